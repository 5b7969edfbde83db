package segment

import "github.com/pkg/errors"

// Sentinel errors identifying the failure classes Open and Remove can
// report. Wrap with errors.Wrap at the call site that has OS context; use
// errors.Is against these to classify a failure.
var (
	ErrInvalidName   = errors.New("segment: invalid name")
	ErrAlreadyExists = errors.New("segment: already exists")
	ErrNotFound      = errors.New("segment: not found")
	ErrSizeMismatch  = errors.New("segment: size does not match an existing segment")
	ErrClosed        = errors.New("segment: use of closed segment")
)
