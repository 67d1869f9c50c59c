package image

import (
	"context"
	"io"

	"github.com/studentnewspaper/imagemage/internal/domain"
)

type imageUsecase interface {
	Render(ctx context.Context, relativePath string, opts domain.RenderOptions) (*domain.Rendered, error)
	Encode(w io.Writer, rendered *domain.Rendered) error
}
