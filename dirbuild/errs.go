package dirbuild

import "errors"

var (
	ErrManifest = errors.New("bad build manifest")
	ErrProfile  = errors.New("bad profile")
)
