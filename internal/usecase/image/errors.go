package image

import "errors"

var (
	ErrBadPath          = errors.New("bad path")
	ErrProcessingFailed = errors.New("failed to process image")
)
