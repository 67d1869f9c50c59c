package image

import "errors"

// ErrBadPath covers every resolution failure: traversal outside the root,
// embedded NUL bytes, missing files and directories. Callers never learn
// which one it was.
var ErrBadPath = errors.New("bad path")
