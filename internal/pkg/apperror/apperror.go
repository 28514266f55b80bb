package apperror

import (
	"fmt"
)

// Kind classifies request failures for HTTP mapping.
type Kind int

const (
	// KindInvalidInput rejects a request before any remote call.
	KindInvalidInput Kind = iota + 1
	// KindUpstream marks the document index or completion provider as
	// unreachable or erroring. Never retried.
	KindUpstream
	// KindInternal covers everything else.
	KindInternal
)

// Error carries a caller-safe message plus the wrapped cause. The cause is
// for operator logs only and must not be echoed to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func NewUpstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func NewInternal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}
