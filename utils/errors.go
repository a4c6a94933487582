package utils

import (
	"errors"

	"github.com/c2fo/fixture"
)

// Operation names used in *fixture.OperationError.
const (
	OpListContainers  = "list containers"
	OpCreateContainer = "create container"
	OpDeleteContainer = "delete container"
	OpListObjects     = "list objects"
	OpPutObject       = "put object"
	OpGetObject       = "get object"
	OpDeleteObject    = "delete object"
	OpConnect         = "connect"
)

// ErrBadName is returned for names that cannot be a single path segment
var ErrBadName = errors.New("name is invalid - may not be empty, '.', '..', or contain slashes")

// Classifier extracts a status code and service error code from a client error.
type Classifier func(err error) (status int, code string)

// WrapOperationError returns err wrapped as a *fixture.OperationError, or nil when err is nil.
// An error that already is an OperationError is returned unchanged.
func WrapOperationError(op, container, key string, err error, classify Classifier) error {
	if err == nil {
		return nil
	}
	var opErr *fixture.OperationError
	if errors.As(err, &opErr) {
		return err
	}
	oe := &fixture.OperationError{Op: op, Container: container, Key: key, Err: err}
	if classify != nil {
		oe.StatusCode, oe.Code = classify(err)
	}
	return oe
}
