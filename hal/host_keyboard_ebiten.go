//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.push(KeyEvent{Press: true, Rune: r})
	}

	keys := []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeyBackspace, KeyBackspace},
		{ebiten.KeyTab, KeyTab},
	}
	for _, k2 := range keys {
		if inpututil.IsKeyJustPressed(k2.key) {
			k.push(KeyEvent{Code: k2.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k2.key) {
			k.push(KeyEvent{Code: k2.code, Press: false})
		}
	}
}
