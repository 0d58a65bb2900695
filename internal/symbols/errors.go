package symbols

import (
	"errors"
	"fmt"
)

// ErrBinaryContent matches every BinaryContentError via errors.Is.
var ErrBinaryContent = errors.New("binary content")

// BinaryContentError is returned for files whose leading bytes contain a NUL.
type BinaryContentError struct {
	Path string
}

func (e *BinaryContentError) Error() string {
	return fmt.Sprintf("refusing to parse binary file: %s", e.Path)
}

func (e *BinaryContentError) Is(target error) bool { return target == ErrBinaryContent }
