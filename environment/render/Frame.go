// Package render converts rendered environment frames to images and
// saves them to disk
package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/fogleman/gg"
	"gorgonia.org/tensor"
)

// Image converts a (height, width, 3) uint8 frame, as returned by
// environments rendering in rgb_array mode, to an image
func Image(frame *tensor.Dense) (*image.RGBA, error) {
	if frame == nil {
		return nil, fmt.Errorf("image: frame must not be nil")
	}

	shape := frame.Shape()
	if len(shape) != 3 || shape[2] != 3 {
		return nil, fmt.Errorf("image: frame must have shape (height, "+
			"width, 3), have(%v)", shape)
	}
	pix, ok := frame.Data().([]uint8)
	if !ok {
		return nil, fmt.Errorf("image: frame must hold uint8, have(%v)",
			frame.Dtype())
	}

	height, width := shape[0], shape[1]
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2],
				A: 255})
		}
	}
	return img, nil
}

// SavePNG saves a frame as a PNG image at path
func SavePNG(frame *tensor.Dense, path string) error {
	img, err := Image(frame)
	if err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}

	dc := gg.NewContextForRGBA(img)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}

// FrameSaver saves sequentially numbered frames to a directory
type FrameSaver struct {
	dir    string
	prefix string
	count  int
}

// NewFrameSaver returns a new FrameSaver which saves frames in dir,
// with filenames prefix0.png, prefix1.png, ...
func NewFrameSaver(dir, prefix string) *FrameSaver {
	return &FrameSaver{dir: dir, prefix: prefix}
}

// Save saves the next frame and returns the path it was saved at
func (f *FrameSaver) Save(frame *tensor.Dense) (string, error) {
	path := filepath.Join(f.dir, fmt.Sprintf("%v%v.png", f.prefix, f.count))
	if err := SavePNG(frame, path); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	f.count++
	return path, nil
}

// Saved returns the number of frames saved
func (f *FrameSaver) Saved() int {
	return f.count
}
