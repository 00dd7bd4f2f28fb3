package envmap

import (
	"errors"
	"fmt"
)

// ErrFaceOutOfRange is matched by every DomainError
var ErrFaceOutOfRange = errors.New("envmap: face index out of range")

// DomainError reports a face index outside [0,5]
type DomainError struct {
	Face Face
}

// Error names the offending face index
func (e *DomainError) Error() string {
	return fmt.Sprintf("envmap: face index %d out of range [0,%d]", int(e.Face), faceCount-1)
}

// Is makes errors.Is match ErrFaceOutOfRange
func (e *DomainError) Is(target error) bool {
	return target == ErrFaceOutOfRange
}
