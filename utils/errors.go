package utils

import (
	"github.com/pkg/errors"
)

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// NewIndexOutOfRangeError is used when an index does not address an element of a collection of length n.
func NewIndexOutOfRangeError(what string, index, n int) error {
	return errors.Errorf("%s index %d out of range [0, %d)", what, index, n)
}
