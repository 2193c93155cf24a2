// Package errors provides coded errors for codelabs.
//
// Every failure that crosses a package boundary carries a [Code]. Codes fall
// into a small set of classes (see [ClassOf]) that decide how the failure is
// reported: the HTTP server turns a class into a status, the CLI into a
// message. Callers never need to match on message text.
//
//	err := errors.New(errors.ErrCodeArticleNotFound, "no article named %q", name)
//	errors.ClassOf(err) == errors.ClassNotFound // true
//
//	err = errors.Wrap(errors.ErrCodeNetwork, cause, "list %s", name)
//	stderrors.Is(err, cause) // true
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a kind of failure.
type Code string

const (
	// Bad requests from a caller.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidArticle Code = "INVALID_ARTICLE"
	ErrCodeInvalidPage    Code = "INVALID_PAGE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Missing articles and pages.
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeArticleNotFound Code = "ARTICLE_NOT_FOUND"
	ErrCodePageOutOfRange  Code = "PAGE_OUT_OF_RANGE"

	// Content host failures.
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeTimeout     Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Class groups codes by how a failure is reported.
type Class int

const (
	ClassInternal Class = iota
	ClassInvalid
	ClassNotFound
	ClassUpstream
	ClassTimeout
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:    ClassInvalid,
	ErrCodeInvalidArticle:  ClassInvalid,
	ErrCodeInvalidPage:     ClassInvalid,
	ErrCodeInvalidPath:     ClassInvalid,
	ErrCodeInvalidConfig:   ClassInvalid,
	ErrCodeNotFound:        ClassNotFound,
	ErrCodeArticleNotFound: ClassNotFound,
	ErrCodePageOutOfRange:  ClassNotFound,
	ErrCodeNetwork:         ClassUpstream,
	ErrCodeRateLimited:     ClassUpstream,
	ErrCodeTimeout:         ClassTimeout,
	ErrCodeInternal:        ClassInternal,
}

// Error is a failure with a code, a message for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like [New] but records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// ClassOf returns the class of err's code. Uncoded errors are internal.
func ClassOf(err error) Class {
	return classes[GetCode(err)]
}

// IsNotFound reports whether err names a missing article or page.
func IsNotFound(err error) bool { return ClassOf(err) == ClassNotFound }

// IsInvalid reports whether err was caused by bad caller input.
func IsInvalid(err error) bool { return ClassOf(err) == ClassInvalid }

// UserMessage returns the message of a coded error without its code and
// cause, or err.Error() for anything else.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
