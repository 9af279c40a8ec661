package mosaic

import (
	"fmt"
	"image"
	"os"

	// decoders for Load
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Fit scales img to fit in columns x rows characters, keeping its aspect
// ratio. The result can always be encoded: its width is even and its
// height a multiple of 3. columns is at most 40 and rows at most 24.
func Fit(img image.Image, columns, rows int) (*image.RGBA, error) {
	if columns < 1 || columns > MaxWidth/CellWidth || rows < 1 || rows > MaxHeight/CellHeight {
		return nil, fmt.Errorf("%w: %dx%d characters", ErrInvalidSize, columns, rows)
	}

	src := img.Bounds()
	if src.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidSize)
	}

	w, h := fitDimensions(src.Dx(), src.Dy(), columns*CellWidth, rows*CellHeight)
	w = max(w-w%CellWidth, CellWidth)
	h = max(h-h%CellHeight, CellHeight)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)

	return dst, nil
}

// fitDimensions returns the largest size within maxW x maxH with the
// aspect ratio of w x h.
func fitDimensions(w, h, maxW, maxH int) (int, int) {
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}

	return max(w*maxH/h, 1), maxH
}

// Load decodes a PNG, JPEG, GIF, BMP or WebP image file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mosaic: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mosaic: decode %s: %w", path, err)
	}

	return img, nil
}
