//go:build !tinygo && !linux

package hal

import "fmt"

type fbdevFramebuffer struct {
	memFramebuffer
}

func openFBDev(path string) (*fbdevFramebuffer, error) {
	return nil, fmt.Errorf("hal: %s: framebuffer devices need linux: %w", path, ErrNotImplemented)
}

func (f *fbdevFramebuffer) Close() error { return nil }
