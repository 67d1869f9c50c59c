package operations

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// trimTolerance is the per-channel distance at which a pixel still counts as
// part of a uniform border.
const trimTolerance = 12

// normalizeClip is the histogram fraction ignored at each end when picking
// the contrast-stretch bounds, so single outlier pixels don't defeat it.
const normalizeClip = 0.01

type Effects struct{}

func NewEffects() *Effects {
	return &Effects{}
}

// Trim removes uniform-color borders, using the top-left pixel as the
// reference background. Images that are entirely background pass through
// unchanged.
func (e *Effects) Trim(img image.Image) image.Image {
	src := imaging.Clone(img)
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 3 || height < 3 {
		return img
	}

	background := src.NRGBAAt(0, 0)

	top := 0
	for top < height && uniformRow(src, top, width, background) {
		top++
	}
	if top == height {
		return img
	}

	bottom := height - 1
	for bottom > top && uniformRow(src, bottom, width, background) {
		bottom--
	}

	left := 0
	for left < width && uniformColumn(src, left, height, background) {
		left++
	}

	right := width - 1
	for right > left && uniformColumn(src, right, height, background) {
		right--
	}

	if top == 0 && left == 0 && bottom == height-1 && right == width-1 {
		return img
	}

	return imaging.Crop(src, image.Rect(left, top, right+1, bottom+1))
}

// Blur applies a Gaussian blur with the given sigma.
func (e *Effects) Blur(img image.Image, sigma float64) image.Image {
	if sigma <= 0 {
		return img
	}
	return imaging.Blur(img, sigma)
}

// Normalize stretches the luminance range to full contrast, clipping
// normalizeClip of the histogram at each end.
func (e *Effects) Normalize(img image.Image) image.Image {
	bins := histogram.NewRGBAHistogram(effect.Grayscale(img)).R.Bins

	low, high := percentileBounds(bins, normalizeClip)
	if high <= low || (low == 0 && high == 255) {
		return img
	}

	scale := 255.0 / float64(high-low)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = stretch(c.R, low, scale)
		c.G = stretch(c.G, low, scale)
		c.B = stretch(c.B, low, scale)
		return c
	})
}

func stretch(v uint8, low int, scale float64) uint8 {
	s := math.Round(float64(int(v)-low) * scale)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func percentileBounds(bins []int, clip float64) (int, int) {
	total := 0
	for _, count := range bins {
		total += count
	}
	if total == 0 {
		return 0, 255
	}

	cut := int(float64(total) * clip)

	low := 0
	acc := 0
	for i, count := range bins {
		acc += count
		if acc > cut {
			low = i
			break
		}
	}

	high := len(bins) - 1
	acc = 0
	for i := len(bins) - 1; i >= 0; i-- {
		acc += bins[i]
		if acc > cut {
			high = i
			break
		}
	}

	return low, high
}

func uniformRow(img *image.NRGBA, y, width int, background color.NRGBA) bool {
	for x := 0; x < width; x++ {
		if !withinTolerance(img.NRGBAAt(x, y), background) {
			return false
		}
	}
	return true
}

func uniformColumn(img *image.NRGBA, x, height int, background color.NRGBA) bool {
	for y := 0; y < height; y++ {
		if !withinTolerance(img.NRGBAAt(x, y), background) {
			return false
		}
	}
	return true
}

func withinTolerance(c, background color.NRGBA) bool {
	return absDiff(c.R, background.R) <= trimTolerance &&
		absDiff(c.G, background.G) <= trimTolerance &&
		absDiff(c.B, background.B) <= trimTolerance
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
