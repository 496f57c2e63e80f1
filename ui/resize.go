package ui

import (
	"image"
)

// Resize scales source up by ratio using nearest-neighbour sampling.
func Resize(source *image.RGBA, ratio int) *image.RGBA {
	if ratio < 1 {
		ratio = 1
	}
	bounds := source.Bounds()
	tw := bounds.Dx() * ratio
	th := bounds.Dy() * ratio

	var target *image.RGBA = image.NewRGBA(image.Rect(0, 0, tw, th))

	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			sx := bounds.Min.X + x/ratio
			sy := bounds.Min.Y + y/ratio
			target.SetRGBA(x, y, source.RGBAAt(sx, sy))
		}
	}

	return target
}
