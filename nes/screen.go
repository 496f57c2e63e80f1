package nes

import (
	"image"
	"image/color"
)

const (
	ScreenWidth  = 32
	ScreenHeight = 32
	// 显存 [$0200, $0600)，一个字节一个像素
	FrameStart uint16 = 0x0200
	FrameEnd   uint16 = FrameStart + ScreenWidth*ScreenHeight
)

var (
	black   = color.RGBA{0, 0, 0, 0xff}
	white   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	grey    = color.RGBA{85, 85, 85, 0xff}
	red     = color.RGBA{0xff, 0, 0, 0xff}
	green   = color.RGBA{0, 0xff, 0, 0xff}
	blue    = color.RGBA{0, 0, 0xff, 0xff}
	magenta = color.RGBA{0xff, 0, 0xff, 0xff}
	yellow  = color.RGBA{0xff, 0xff, 0, 0xff}
	cyan    = color.RGBA{0, 0xff, 0xff, 0xff}
)

// ColorOf maps a framebuffer byte to its colour.
func ColorOf(b byte) color.RGBA {
	switch b {
	case 0:
		return black
	case 1:
		return white
	case 2, 9:
		return grey
	case 3, 10:
		return red
	case 4, 11:
		return green
	case 5, 12:
		return blue
	case 6, 13:
		return magenta
	case 7, 14:
		return yellow
	default:
		return cyan
	}
}

type Screen struct {
	front *image.RGBA
}

func NewScreen() *Screen {
	front := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for i := 3; i < len(front.Pix); i += 4 {
		front.Pix[i] = 0xff
	}
	return &Screen{front}
}

// Update copies the framebuffer out of mem and reports whether any
// pixel changed.
func (s *Screen) Update(mem Memory) bool {
	changed := false
	for addr := FrameStart; addr < FrameEnd; addr++ {
		i := int(addr - FrameStart)
		x, y := i%ScreenWidth, i/ScreenWidth
		c := ColorOf(mem.Read(addr))
		if s.front.RGBAAt(x, y) != c {
			s.front.SetRGBA(x, y, c)
			changed = true
		}
	}
	return changed
}

// Buffer returns a copy of the current frame.
func (s *Screen) Buffer() *image.RGBA {
	frame := image.NewRGBA(s.front.Rect)
	copy(frame.Pix, s.front.Pix)
	return frame
}
