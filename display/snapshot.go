package display

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"

	"github.com/user/splice-cli/source"
)

// Snapshot returns the frame as an image with label drawn in its lower left
// corner. An empty label leaves the frame untouched.
func Snapshot(f source.Frame, label string) image.Image {
	img := f.Image()
	if label == "" {
		return img
	}
	dc := gg.NewContextForRGBA(img)
	tw, th := dc.MeasureString(label)
	const pad = 4
	y := float64(f.Height) - th - 2*pad
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, y, tw+2*pad, th+2*pad)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(label, pad, y+pad, 0, 1)
	return dc.Image()
}

// EncodeBMP writes img as a BMP.
func EncodeBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encode bmp: %w", err)
	}
	return nil
}

// WriteBMP writes the labelled frame to path, creating parent directories.
func WriteBMP(path string, f source.Frame, label string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeBMP(file, Snapshot(f, label)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
