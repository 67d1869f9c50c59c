package image

import (
	"context"
	"io"

	"github.com/studentnewspaper/imagemage/internal/domain"
)

type fileRepository interface {
	Resolve(relativePath string) (string, error)
	Open(path string) (io.ReadCloser, error)
}

type imagePipeline interface {
	Process(ctx context.Context, r io.Reader, opts domain.RenderOptions) (*domain.Rendered, error)
	Encode(w io.Writer, rendered *domain.Rendered) error
}
