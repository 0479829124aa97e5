package notegen

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound indicates the referenced note does not exist or belongs to
// another identity.
var ErrNotFound = errors.New("note not found")

// ErrPromptTooShort indicates an image description below the minimum length.
var ErrPromptTooShort = errors.New("image prompt must be at least 3 characters long")

// ImageGenerationError wraps any failure inside the image pipeline
// (generate, extract, validate, publish) into one externally visible
// condition, preserving the underlying reason for diagnostics.
type ImageGenerationError struct {
	Reason string
	Err    error
}

func (e *ImageGenerationError) Error() string {
	return fmt.Sprintf("image generation failed: %s", e.Reason)
}

func (e *ImageGenerationError) Unwrap() error {
	return e.Err
}

func imageFailure(err error) *ImageGenerationError {
	return &ImageGenerationError{Reason: err.Error(), Err: err}
}
