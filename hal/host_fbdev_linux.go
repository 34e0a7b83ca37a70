//go:build !tinygo && linux

package hal

import (
	"fmt"
	"unsafe"

	"fbcon/video/fb"

	"golang.org/x/sys/unix"
)

// <linux/fb.h> ioctls; 0x46 is 'F'.
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// fbFixScreenInfo mirrors struct fb_fix_screeninfo.
type fbFixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	_            [2]uint16
}

type fbBitField struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// fbVarScreenInfo mirrors struct fb_var_screeninfo.
type fbVarScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Alpha  fbBitField
	NonStd                   uint32
	Activate                 uint32
	Height, Width            uint32
	_                        uint32
	PixelClock               uint32
	LeftMargin               uint32
	RightMargin              uint32
	UpperMargin              uint32
	LowerMargin              uint32
	HSyncLen                 uint32
	VSyncLen                 uint32
	Sync                     uint32
	VMode                    uint32
	Rotate                   uint32
	ColorSpace               uint32
	_                        [4]uint32
}

// fbdevFramebuffer draws straight into a mapped /dev/fbN. Present is a no-op:
// the kernel scans the mapping out.
type fbdevFramebuffer struct {
	fd     int
	width  int
	height int
	stride int
	region []byte
	mem    *fb.Pixels
}

func openFBDev(path string) (*fbdevFramebuffer, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("hal: open %s: %w", path, err)
	}

	var vi fbVarScreenInfo
	if err := ioctlPtr(fd, fbioGetVScreenInfo, unsafe.Pointer(&vi)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hal: %s: FBIOGET_VSCREENINFO: %w", path, err)
	}
	var fi fbFixScreenInfo
	if err := ioctlPtr(fd, fbioGetFScreenInfo, unsafe.Pointer(&fi)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hal: %s: FBIOGET_FSCREENINFO: %w", path, err)
	}
	if vi.BitsPerPixel != 32 {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s is %d bpp", ErrUnsupportedFormat, path, vi.BitsPerPixel)
	}

	size := int(fi.LineLength) * int(vi.YRes)
	if fi.SMemLen > 0 && int(fi.SMemLen) < size {
		size = int(fi.SMemLen)
	}
	region, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hal: mmap %s: %w", path, err)
	}

	return &fbdevFramebuffer{
		fd:     fd,
		width:  int(vi.XRes),
		height: int(vi.YRes),
		stride: int(fi.LineLength),
		region: region,
		mem:    fb.PixelsFromBytes(region),
	}, nil
}

func ioctlPtr(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (f *fbdevFramebuffer) Width() int          { return f.width }
func (f *fbdevFramebuffer) Height() int         { return f.height }
func (f *fbdevFramebuffer) Format() PixelFormat { return PixelFormatXRGB8888 }
func (f *fbdevFramebuffer) StrideBytes() int    { return f.stride }
func (f *fbdevFramebuffer) Memory() PixelMemory { return f.mem }
func (f *fbdevFramebuffer) Present() error      { return nil }

func (f *fbdevFramebuffer) Close() error {
	var err error
	if f.region != nil {
		err = unix.Munmap(f.region)
		f.region = nil
		f.mem = fb.NewPixels(0)
	}
	if f.fd >= 0 {
		if cerr := unix.Close(f.fd); err == nil {
			err = cerr
		}
		f.fd = -1
	}
	return err
}
