package fixture

import (
	"fmt"
	"strings"
)

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrNotAcquired - host and mapped port are undefined until Acquire completes
	ErrNotAcquired = Error("container handle has not been acquired")

	// ErrNoExposedPort - a Request must declare at least one exposed port
	ErrNoExposedPort = Error("request declares no exposed port")

	// ErrInvalidPlan - step names must be unique and may only require earlier steps
	ErrInvalidPlan = Error("invalid step plan")

	// ErrUnknownService - no service registered under the requested name
	ErrUnknownService = Error("unknown service")
)

// ProvisionError is returned when a container cannot be started or its endpoint never becomes usable.
// It is fatal to a run.
type ProvisionError struct {
	Image string
	Err   error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision %s: %v", e.Image, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// OperationError is a failed remote call against a storage service.
type OperationError struct {
	Op         string
	Container  string
	Key        string
	StatusCode int
	Code       string
	Err        error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Container != "" {
		b.WriteString(" ")
		b.WriteString(e.Container)
		if e.Key != "" {
			b.WriteString("/")
			b.WriteString(e.Key)
		}
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d", e.StatusCode)
		if e.Code != "" {
			fmt.Fprintf(&b, ", %s", e.Code)
		}
		b.WriteString(")")
	} else if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *OperationError) Unwrap() error { return e.Err }

// AssertionError reports an observation that did not match the step's expectation.
type AssertionError struct {
	Step     string
	Expected any
	Actual   any
	Msg      string
}

func (e *AssertionError) Error() string {
	prefix := e.Msg
	if e.Step != "" {
		prefix = e.Step + ": " + e.Msg
	}
	return fmt.Sprintf("%s: expected %v, actual %v", prefix, e.Expected, e.Actual)
}

// TeardownError is a failed container stop. It is logged and never escalated past a run.
type TeardownError struct {
	Image       string
	ContainerID string
	Err         error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("teardown %s (%s): %v", e.Image, e.ContainerID, e.Err)
}

func (e *TeardownError) Unwrap() error { return e.Err }
