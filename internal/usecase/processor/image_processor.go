package processor

import (
	"context"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"

	// Sources may be webp; imaging registers the other decoders itself.
	_ "golang.org/x/image/webp"

	"github.com/studentnewspaper/imagemage/internal/domain"
	"github.com/studentnewspaper/imagemage/internal/usecase/processor/operations"
)

// ImageProcessor runs the transform pipeline: decode, then trim, resize/crop,
// blur and normalize in that fixed order, with encoding deferred until the
// caller has read the output metadata.
type ImageProcessor struct {
	resizer *operations.Resizer
	effects *operations.Effects
	encoder *operations.Encoder
	logger  *zlog.Zerolog
}

func NewImageProcessor(logger *zlog.Zerolog) *ImageProcessor {
	return &ImageProcessor{
		resizer: operations.NewResizer(),
		effects: operations.NewEffects(),
		encoder: operations.NewEncoder(),
		logger:  logger,
	}
}

func (p *ImageProcessor) Process(ctx context.Context, r io.Reader, opts domain.RenderOptions) (*domain.Rendered, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if opts.Trim {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img = p.effects.Trim(img)
	}

	img, err = p.resizer.Process(ctx, img, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to resize image: %w", err)
	}

	if opts.BlurSigma > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img = p.effects.Blur(img, opts.BlurSigma)
	}

	if opts.Normalize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img = p.effects.Normalize(img)
	}

	bounds := img.Bounds()
	rendered := &domain.Rendered{
		Image:   img,
		Format:  opts.Format,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Quality: opts.Quality,
	}

	p.logger.Debug().
		Str("format", string(rendered.Format)).
		Int("width", rendered.Width).
		Int("height", rendered.Height).
		Int("quality", rendered.Quality).
		Msg("Transform stages completed")

	return rendered, nil
}

func (p *ImageProcessor) Encode(w io.Writer, rendered *domain.Rendered) error {
	return p.encoder.Encode(w, rendered.Image, rendered.Format, rendered.Quality)
}
