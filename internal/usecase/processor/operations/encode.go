package operations

import (
	"image"
	"image/jpeg"
	"io"

	"github.com/chai2010/webp"

	"github.com/studentnewspaper/imagemage/internal/domain"
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes img to w in the negotiated format. Unknown formats fall back
// to jpeg, mirroring the negotiator's fallback.
func (e *Encoder) Encode(w io.Writer, img image.Image, format domain.ImageFormat, quality int) error {
	switch format {
	case domain.FormatWebP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
}
