package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateFormat(t *testing.T) {
	tests := []struct {
		name     string
		explicit ImageFormat
		accept   string
		want     ImageFormat
	}{
		{
			name:     "explicit format wins over accept",
			explicit: FormatJPEG,
			accept:   "image/webp,image/*",
			want:     FormatJPEG,
		},
		{
			name:   "webp accepted",
			accept: "text/html,image/webp",
			want:   FormatWebP,
		},
		{
			name:   "image wildcard counts as webp acceptance",
			accept: "image/*",
			want:   FormatWebP,
		},
		{
			name:   "full wildcard counts as webp acceptance",
			accept: "*/*",
			want:   FormatWebP,
		},
		{
			name:   "no webp acceptance falls back to jpeg",
			accept: "text/html,image/png",
			want:   FormatJPEG,
		},
		{
			name: "empty accept header falls back to jpeg",
			want: FormatJPEG,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NegotiateFormat(tt.explicit, tt.accept))
		})
	}
}

func TestFullImageOptions(t *testing.T) {
	opts := FullImageOptions(800, 600, FormatJPEG, "")

	assert.Equal(t, StrategyCentre, opts.Strategy)
	assert.Equal(t, DefaultJPEGQuality, opts.Quality)
	assert.False(t, opts.Trim)
	assert.False(t, opts.Normalize)
	assert.Zero(t, opts.BlurSigma)
}

func TestFullImageOptions_WebPQuality(t *testing.T) {
	opts := FullImageOptions(0, 0, FormatWebP, StrategyEntropy)

	assert.Equal(t, DefaultWebPQuality, opts.Quality)
	assert.Equal(t, StrategyEntropy, opts.Strategy)
}

func TestPreviewOptions_Defaults(t *testing.T) {
	opts := PreviewOptions(0, 0, FormatJPEG)

	assert.Equal(t, DefaultPreviewSize, opts.Width)
	assert.Equal(t, DefaultPreviewSize, opts.Height)
	assert.Equal(t, PreviewQuality, opts.Quality)
	assert.Equal(t, StrategyCentre, opts.Strategy)
	assert.True(t, opts.Trim)
	assert.True(t, opts.Normalize)
	assert.Equal(t, PreviewBlurSigma, opts.BlurSigma)
}

func TestRendered_MimeType(t *testing.T) {
	r := &Rendered{Format: FormatWebP}
	assert.Equal(t, "image/webp", r.MimeType())
}
