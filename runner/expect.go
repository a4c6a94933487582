package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/stretchr/testify/assert"

	"github.com/c2fo/fixture"
)

// Empty expects an empty name listing.
func Empty() Expect {
	return func(observed any) error {
		names, err := asNames(observed)
		if err != nil {
			return err
		}
		if len(names) != 0 {
			return &fixture.AssertionError{Msg: "listing is not empty", Expected: []string{}, Actual: names}
		}
		return nil
	}
}

// Contains expects name to appear in a listing.
func Contains(name string) Expect {
	return func(observed any) error {
		names, err := asNames(observed)
		if err != nil {
			return err
		}
		if count(names, name) == 0 {
			return &fixture.AssertionError{Msg: fmt.Sprintf("%q not listed", name), Expected: name, Actual: names}
		}
		return nil
	}
}

// ContainsOnce expects name to appear in a listing exactly once.
func ContainsOnce(name string) Expect {
	return func(observed any) error {
		names, err := asNames(observed)
		if err != nil {
			return err
		}
		if n := count(names, name); n != 1 {
			return &fixture.AssertionError{Msg: fmt.Sprintf("%q not listed exactly once", name), Expected: 1, Actual: n}
		}
		return nil
	}
}

// Excludes expects name to be absent from a listing.
func Excludes(name string) Expect {
	return func(observed any) error {
		names, err := asNames(observed)
		if err != nil {
			return err
		}
		if count(names, name) != 0 {
			return &fixture.AssertionError{Msg: fmt.Sprintf("%q still listed", name), Expected: "absent", Actual: names}
		}
		return nil
	}
}

// Equal expects the observation to equal expected.
func Equal(expected any) Expect {
	return func(observed any) error {
		if !assert.ObjectsAreEqual(expected, observed) {
			return &fixture.AssertionError{Msg: "not equal", Expected: expected, Actual: observed}
		}
		return nil
	}
}

// BytesEqual expects the observation to be exactly expected. Mismatches report lengths rather than content.
func BytesEqual(expected []byte) Expect {
	return func(observed any) error {
		got, ok := observed.([]byte)
		if !ok {
			return &fixture.AssertionError{Msg: "observation is not bytes", Expected: "[]byte", Actual: fmt.Sprintf("%T", observed)}
		}
		if !bytes.Equal(expected, got) {
			return &fixture.AssertionError{
				Msg:      "bytes differ",
				Expected: fmt.Sprintf("%d bytes", len(expected)),
				Actual:   fmt.Sprintf("%d bytes", len(got)),
			}
		}
		return nil
	}
}

// Fails inverts an action: the step passes only when the remote call is rejected with a *fixture.OperationError.
// Any other error is returned unchanged and fails the step as an operation failure.
func Fails(action Action) Action {
	return func(ctx context.Context, sess *fixture.Session) error {
		err := action(ctx, sess)
		if err == nil {
			return &fixture.AssertionError{Msg: "operation succeeded", Expected: "operation error", Actual: "success"}
		}
		var oe *fixture.OperationError
		if errors.As(err, &oe) {
			if sess != nil {
				sess.Logger.Debug().Err(err).Msg("operation failed as expected")
			}
			return nil
		}
		return err
	}
}

func asNames(observed any) ([]string, error) {
	names, ok := observed.([]string)
	if !ok && observed != nil {
		return nil, &fixture.AssertionError{Msg: "observation is not a listing", Expected: "[]string", Actual: fmt.Sprintf("%T", observed)}
	}
	return names, nil
}

func count(names []string, name string) int {
	n := 0
	for _, v := range names {
		if v == name {
			n++
		}
	}
	return n
}
