package dnn

import "github.com/pkg/errors"

// ErrSizeMismatch is returned when a buffer does not match the size the network requires.
var ErrSizeMismatch = errors.New("size mismatch")

func sizeMismatch(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSizeMismatch, format, args...)
}
