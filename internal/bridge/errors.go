package bridge

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindTransport covers network failures, non-JSON bodies and calls to
	// operations outside the supported table.
	KindTransport ErrorKind = "transport"
	// KindUpstream means the bridge answered {ok: false}.
	KindUpstream ErrorKind = "upstream"
)

// Error is the single error type returned by the bridge client.
type Error struct {
	Kind    ErrorKind
	Op      Operation
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bridge %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("bridge %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("bridge %s: %s failure", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the upstream message verbatim when there is one.
func UserMessage(err error) (string, bool) {
	var be *Error
	if errors.As(err, &be) && be.Kind == KindUpstream && be.Message != "" {
		return be.Message, true
	}
	return "", false
}
