package display

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/user/splice-cli/source"
)

// upperHalf draws the top pixel in the foreground and the bottom in the background.
const upperHalf = "▀"

// Fit returns the largest size with the aspect ratio of w x h that fits
// inside maxW x maxH.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	fw, fh := maxW, h*maxW/w
	if fh > maxH {
		fw, fh = w*maxH/h, maxH
	}
	return max(fw, 1), max(fh, 1)
}

// Scale resizes the frame to w x h pixels.
func Scale(f source.Frame, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := f.Image()
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// RenderHalfBlocks draws the frame into at most cols x rows terminal cells,
// two pixels per cell, keeping its aspect ratio.
func RenderHalfBlocks(f source.Frame, cols, rows int) string {
	w, h := Fit(f.Width, f.Height, cols, rows*2)
	if w == 0 || h == 0 {
		return ""
	}
	h += h % 2
	img := Scale(f, w, h)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := img.RGBAAt(x, y)
			bottom := img.RGBAAt(x, y+1)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top.R, top.G, top.B))).
				Background(lipgloss.Color(hex(bottom.R, bottom.G, bottom.B)))
			b.WriteString(style.Render(upperHalf))
		}
	}
	return b.String()
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
