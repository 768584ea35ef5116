package composable_error

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide whether to retry,
// abort or degrade.
type Kind string

const (
	KindDefault       Kind = "DEFAULT"
	KindConfiguration Kind = "CONFIGURATION"
	KindTransport     Kind = "TRANSPORT"
	KindDecode        Kind = "DECODE"
)

type ComposableError struct {
	code    string
	message string
	kind    Kind
	cause   error
}

func (ce ComposableError) Error() string {
	if ce.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", ce.code, ce.message, ce.cause)
	}
	return fmt.Sprintf("[%s] %s", ce.code, ce.message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (ce ComposableError) Unwrap() error {
	return ce.cause
}

// Kind returns the failure class, KindDefault when none was set
func (ce ComposableError) Kind() Kind {
	if ce.kind == "" {
		return KindDefault
	}
	return ce.kind
}

func GetCode(err error) string {
	var ce ComposableError
	if !errors.As(err, &ce) {
		return "DEFAULT"
	}
	return ce.code
}

// GetKind returns the kind of the first ComposableError in err's chain
func GetKind(err error) Kind {
	var ce ComposableError
	if !errors.As(err, &ce) {
		return KindDefault
	}
	return ce.Kind()
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && GetKind(err) == kind
}

func ComposeWith(err error, code string, message string) error {
	ce, ok := err.(ComposableError)
	if !ok {
		return err
	}
	if code != "" {
		ce.code = code + "_" + ce.code
	}
	if message != "" {
		ce.message = message + ", " + ce.message
	}
	return ce
}

func New(code string, message string) ComposableError {
	return ComposableError{
		code:    code,
		message: message,
	}
}

// Wrap builds an error of the given kind around cause
func Wrap(kind Kind, code string, message string, cause error) ComposableError {
	return ComposableError{
		code:    code,
		message: message,
		kind:    kind,
		cause:   cause,
	}
}

func Configuration(code string, message string) ComposableError {
	return Wrap(KindConfiguration, code, message, nil)
}

func Transport(code string, message string, cause error) ComposableError {
	return Wrap(KindTransport, code, message, cause)
}

func Decode(code string, message string, cause error) ComposableError {
	return Wrap(KindDecode, code, message, cause)
}
