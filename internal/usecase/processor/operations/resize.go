package operations

import (
	"context"
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
	"github.com/muesli/smartcrop/nfnt"

	"github.com/studentnewspaper/imagemage/internal/domain"
)

// entropyWindowSteps is the number of candidate crop windows scored when the
// entropy strategy slides along the image's long axis.
const entropyWindowSteps = 16

type Resizer struct {
	analyzer smartcrop.Analyzer
}

func NewResizer() *Resizer {
	return &Resizer{
		analyzer: smartcrop.NewAnalyzer(nfnt.NewDefaultResizer()),
	}
}

// Process scales img to the requested dimensions without ever enlarging
// beyond the source. With both dimensions set the crop strategy decides
// which region survives; with one, the other axis preserves aspect ratio.
func (r *Resizer) Process(ctx context.Context, img image.Image, opts domain.RenderOptions) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	width := opts.Width
	height := opts.Height

	switch {
	case width == 0 && height == 0:
		return img, nil
	case width > 0 && height > 0:
		width, height = shrinkToSource(width, height, srcWidth, srcHeight)
		if width == srcWidth && height == srcHeight {
			return img, nil
		}
		return r.fill(img, width, height, opts.Strategy), nil
	case width > 0:
		if width >= srcWidth {
			return img, nil
		}
		return imaging.Resize(img, width, 0, imaging.Lanczos), nil
	default:
		if height >= srcHeight {
			return img, nil
		}
		return imaging.Resize(img, 0, height, imaging.Lanczos), nil
	}
}

func (r *Resizer) fill(img image.Image, width, height int, strategy domain.CropStrategy) image.Image {
	switch strategy {
	case domain.StrategyAttention:
		rect, err := r.analyzer.FindBestCrop(img, width, height)
		if err != nil || rect.Empty() {
			return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
		}
		return imaging.Resize(imaging.Crop(img, rect), width, height, imaging.Lanczos)
	case domain.StrategyEntropy:
		rect := entropyWindow(img, width, height)
		return imaging.Resize(imaging.Crop(img, rect), width, height, imaging.Lanczos)
	default:
		return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	}
}

// shrinkToSource scales the target box down, keeping its aspect ratio, until
// neither side exceeds the source.
func shrinkToSource(targetWidth, targetHeight, srcWidth, srcHeight int) (int, int) {
	if targetWidth <= srcWidth && targetHeight <= srcHeight {
		return targetWidth, targetHeight
	}

	scale := math.Min(float64(srcWidth)/float64(targetWidth), float64(srcHeight)/float64(targetHeight))

	width := int(math.Floor(float64(targetWidth) * scale))
	height := int(math.Floor(float64(targetHeight) * scale))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// entropyWindow slides the largest window with the target aspect ratio along
// the image's free axis and returns the one with the highest grayscale
// histogram entropy. Deterministic for a given source.
func entropyWindow(img image.Image, targetWidth, targetHeight int) image.Rectangle {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	windowWidth := srcWidth
	windowHeight := srcHeight
	if srcWidth*targetHeight > srcHeight*targetWidth {
		windowWidth = srcHeight * targetWidth / targetHeight
	} else {
		windowHeight = srcWidth * targetHeight / targetWidth
	}
	if windowWidth < 1 {
		windowWidth = 1
	}
	if windowHeight < 1 {
		windowHeight = 1
	}

	gray := effect.Grayscale(img)

	maxOffsetX := srcWidth - windowWidth
	maxOffsetY := srcHeight - windowHeight

	best := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+windowWidth, bounds.Min.Y+windowHeight)
	bestScore := -1.0

	for i := 0; i <= entropyWindowSteps; i++ {
		offsetX := maxOffsetX * i / entropyWindowSteps
		offsetY := maxOffsetY * i / entropyWindowSteps

		grayBounds := gray.Bounds()
		candidate := image.Rect(
			grayBounds.Min.X+offsetX,
			grayBounds.Min.Y+offsetY,
			grayBounds.Min.X+offsetX+windowWidth,
			grayBounds.Min.Y+offsetY+windowHeight,
		)

		score := entropyOf(imaging.Crop(gray, candidate))
		if score > bestScore {
			bestScore = score
			best = image.Rect(
				bounds.Min.X+offsetX,
				bounds.Min.Y+offsetY,
				bounds.Min.X+offsetX+windowWidth,
				bounds.Min.Y+offsetY+windowHeight,
			)
		}

		if maxOffsetX == 0 && maxOffsetY == 0 {
			break
		}
	}

	return best
}

// entropyOf computes the Shannon entropy of a grayscale image's histogram.
// The red channel stands in for luminance since the input is already gray.
func entropyOf(img image.Image) float64 {
	bins := histogram.NewRGBAHistogram(img).R.Bins

	total := 0
	for _, count := range bins {
		total += count
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, count := range bins {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
