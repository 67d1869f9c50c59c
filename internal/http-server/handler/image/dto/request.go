package dto

// ImageRequest carries the /image query parameters. Nil dimensions mean the
// axis was omitted and the source's native size is preserved; supplied
// values, zero included, must pass the range checks.
type ImageRequest struct {
	Width    *int   `validate:"omitempty,min=10,max=2000"`
	Height   *int   `validate:"omitempty,min=10,max=2000"`
	Format   string `validate:"omitempty,oneof=webp jpeg"`
	Strategy string `validate:"omitempty,oneof=entropy attention"`
}

// PreviewRequest carries the /preview query parameters. Omitted dimensions
// default to 42 after validation, so an explicit out-of-range value still
// fails like the image schema's bounds do.
type PreviewRequest struct {
	Width  *int   `validate:"omitempty,min=5,max=100"`
	Height *int   `validate:"omitempty,min=5,max=100"`
	Format string `validate:"omitempty,oneof=webp jpeg"`
}
