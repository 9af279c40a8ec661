package mosaic

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/arloliu/go-minitel/videotex"
)

// Levels is the number of gray levels a Minitel renders.
const Levels = 8

// levelFunc returns the gray level reader matching the colour model of img.
func levelFunc(img image.Image) func(x, y int) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return func(x, y int) int {
			return GrayLevel(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
		}
	default:
		return func(x, y int) int {
			r, g, b, _ := img.At(x, y).RGBA()
			return ColorLevel(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
}

// GrayLevel reduces an 8 bit gray value to one of the 8 levels.
func GrayLevel(y uint8) int {
	return int(y) * Levels / 256
}

// ColorLevel reduces a colour to one of the 8 levels by its perceived
// brightness, sqrt(.299 r² + .587 g² + .114 b²).
func ColorLevel(r, g, b uint8) int {
	fr, fg, fb := float64(r), float64(g), float64(b)
	brightness := math.Round(math.Sqrt(0.299*fr*fr + 0.587*fg*fg + 0.114*fb*fb))

	return int(brightness) * Levels / 256
}

// twoColors returns the most and the second most frequent levels. Equally
// frequent levels are ranked by ascending level.
func twoColors(levels [6]int) (bg, fg int) {
	var counts [Levels]int
	for _, l := range levels {
		counts[l]++
	}

	order := []int{0, 1, 2, 3, 4, 5, 6, 7}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	return order[0], order[1]
}

// closer reports whether level is strictly closer to bg than to fg.
func closer(level, bg, fg int) bool {
	return abs(bg-level) < abs(fg-level)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

// colorOf returns the colour code rendered with the luminance of level.
func colorOf(level int) byte {
	c, err := videotex.GrayLevel(level)
	if err != nil {
		return byte(videotex.White)
	}

	return byte(c)
}
