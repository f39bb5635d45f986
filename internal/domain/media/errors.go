package media

import "errors"

// Sentinel kinds for extraction errors.
var (
	ErrEmptyUpload      = errors.New("empty upload")
	ErrUnsupportedImage = errors.New("cannot identify image file")
)
