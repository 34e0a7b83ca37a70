//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"
	"time"

	"fbcon/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg HostConfig) error {
	if cfg.FBDev != "" || cfg.X11 {
		return errors.New("hal: window mode draws into its own framebuffer; drop -fbdev/-x11 or use -headless")
	}
	h, err := newHostHAL(cfg)
	if err != nil {
		return err
	}
	defer h.Close()
	step := newApp(h)

	fb := h.fb.(*memFramebuffer)
	g := &hostGame{h: h, fb: fb, step: step}
	ebiten.SetWindowTitle("fbcon (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(fb.width*2, fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	fb    *memFramebuffer
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.advance(time.Now())
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	xrgbToRGBA(g.img.Pix, fb.mem, fb.width, fb.height, fb.stride/4)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.width, g.fb.height
}
