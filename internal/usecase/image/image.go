package image

import (
	"context"
	"errors"
	"io"

	"github.com/wb-go/wbf/zlog"

	"github.com/studentnewspaper/imagemage/internal/domain"
	repoImage "github.com/studentnewspaper/imagemage/internal/repository/image"
)

type ImageUsecase struct {
	fileRepo fileRepository
	pipeline imagePipeline
	logger   *zlog.Zerolog
}

func NewImageUsecase(fileRepo fileRepository, pipeline imagePipeline, logger *zlog.Zerolog) *ImageUsecase {
	return &ImageUsecase{
		fileRepo: fileRepo,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Render resolves relativePath against the root directory, streams the file
// through the transform pipeline and returns the result ready for encoding.
// No file is opened unless resolution succeeds.
func (i *ImageUsecase) Render(ctx context.Context, relativePath string, opts domain.RenderOptions) (*domain.Rendered, error) {
	path, err := i.fileRepo.Resolve(relativePath)
	if err != nil {
		if errors.Is(err, repoImage.ErrBadPath) {
			return nil, ErrBadPath
		}
		return nil, err
	}

	file, err := i.fileRepo.Open(path)
	if err != nil {
		// The file passed the stat check but vanished before open.
		i.logger.Warn().Err(err).Str("path", path).Msg("Resolved file could not be opened")
		return nil, ErrBadPath
	}
	defer file.Close()

	rendered, err := i.pipeline.Process(ctx, file, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		i.logger.Error().Err(err).Str("path", path).Msg("Pipeline failed")
		return nil, ErrProcessingFailed
	}

	return rendered, nil
}

// Encode writes the rendered image to w. Callers set response headers from
// the Rendered metadata before calling this.
func (i *ImageUsecase) Encode(w io.Writer, rendered *domain.Rendered) error {
	return i.pipeline.Encode(w, rendered)
}
