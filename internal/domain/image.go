package domain

import (
	"image"
	"strings"
)

type ImageFormat string

const (
	FormatWebP ImageFormat = "webp"
	FormatJPEG ImageFormat = "jpeg"
)

type CropStrategy string

const (
	StrategyCentre    CropStrategy = "centre"
	StrategyEntropy   CropStrategy = "entropy"
	StrategyAttention CropStrategy = "attention"
)

const (
	DefaultJPEGQuality = 85
	DefaultWebPQuality = 75
	PreviewQuality     = 12

	PreviewBlurSigma = 5.0

	DefaultPreviewSize = 42
)

// RenderOptions configures one pass through the transform pipeline.
// A zero Width or Height leaves that axis to the source's aspect ratio.
type RenderOptions struct {
	Width     int
	Height    int
	Format    ImageFormat
	Strategy  CropStrategy
	Trim      bool
	BlurSigma float64
	Normalize bool
	Quality   int
}

// FullImageOptions builds the pipeline configuration for the /image endpoint:
// resize and crop only, full encoder quality.
func FullImageOptions(width, height int, format ImageFormat, strategy CropStrategy) RenderOptions {
	if strategy == "" {
		strategy = StrategyCentre
	}

	return RenderOptions{
		Width:    width,
		Height:   height,
		Format:   format,
		Strategy: strategy,
		Quality:  fullQuality(format),
	}
}

// PreviewOptions builds the pipeline configuration for the /preview endpoint:
// trimmed, center-cropped, blurred, normalized and heavily compressed.
func PreviewOptions(width, height int, format ImageFormat) RenderOptions {
	if width == 0 {
		width = DefaultPreviewSize
	}
	if height == 0 {
		height = DefaultPreviewSize
	}

	return RenderOptions{
		Width:     width,
		Height:    height,
		Format:    format,
		Strategy:  StrategyCentre,
		Trim:      true,
		BlurSigma: PreviewBlurSigma,
		Normalize: true,
		Quality:   PreviewQuality,
	}
}

func fullQuality(format ImageFormat) int {
	if format == FormatWebP {
		return DefaultWebPQuality
	}
	return DefaultJPEGQuality
}

// Rendered is the output of the transform stages, held until the caller has
// set response headers from its metadata and asks for the encoded bytes.
type Rendered struct {
	Image   image.Image
	Format  ImageFormat
	Width   int
	Height  int
	Quality int
}

func (r *Rendered) MimeType() string {
	return "image/" + string(r.Format)
}

// NegotiateFormat picks the output codec: an explicit format wins, otherwise
// webp when the client's Accept header declares it, with jpeg as fallback.
func NegotiateFormat(explicit ImageFormat, acceptHeader string) ImageFormat {
	if explicit != "" {
		return explicit
	}
	if AcceptsWebP(acceptHeader) {
		return FormatWebP
	}
	return FormatJPEG
}

// AcceptsWebP treats "image/webp" and the "image/*" and "*/*" wildcards as
// webp acceptance. An absent Accept header negotiates jpeg.
func AcceptsWebP(acceptHeader string) bool {
	return strings.Contains(acceptHeader, "image/webp") ||
		strings.Contains(acceptHeader, "image/*") ||
		strings.Contains(acceptHeader, "*/*")
}
