package hal

// keyEventForRune maps a terminal byte stream's control characters onto key
// codes; anything else is text input.
func keyEventForRune(r rune) KeyEvent {
	switch r {
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter, Press: true}
	case 0x08, 0x7F:
		return KeyEvent{Code: KeyBackspace, Press: true}
	case 0x1B:
		return KeyEvent{Code: KeyEscape, Press: true}
	case '\t':
		return KeyEvent{Code: KeyTab, Press: true}
	default:
		return KeyEvent{Press: true, Rune: r}
	}
}
