package itemstore

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("itemstore: index out of range")
	ErrIDExhausted     = errors.New("itemstore: could not generate a unique id")
)

// ValidationError reports rejected input. The list is left unchanged.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("itemstore: invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
