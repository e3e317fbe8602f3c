package source

import (
	"image"
	"image/color"
)

// Frame is one decoded picture. Pix is packed row-major with Channels bytes
// per pixel (3 = RGB, 4 = RGBA). Receivers must treat Pix as read-only.
type Frame struct {
	Index    int
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Image converts the frame to an *image.RGBA.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	if f.Channels < 3 {
		return img
	}
	stride := f.Width * f.Channels
	for y := 0; y < f.Height; y++ {
		row := y * stride
		if row+stride > len(f.Pix) {
			break
		}
		for x := 0; x < f.Width; x++ {
			p := row + x*f.Channels
			a := uint8(0xff)
			if f.Channels == 4 {
				a = f.Pix[p+3]
			}
			img.SetRGBA(x, y, color.RGBA{R: f.Pix[p], G: f.Pix[p+1], B: f.Pix[p+2], A: a})
		}
	}
	return img
}
