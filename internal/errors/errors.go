package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is a coded error. The code picks the exit status and decides whether
// the message may reach the terminal; Meta carries the details a rejected
// edit is explained with (field, options, limit).
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any coded error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMeta attaches a detail to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// Field returns the draft field the error is about, or ""
func (e *Error) Field() string {
	field, _ := e.Meta["field"].(string)
	return field
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. A coded cause keeps its code and a copy of its
// metadata; any other cause becomes Internal.
func Wrap(err error, message string) *Error {
	return wrap(err, "", message)
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return wrap(err, "", fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under code, whatever the cause's own code
func WrapWithCode(err error, code Code, message string) *Error {
	return wrap(err, code, message)
}

// WrapWithCodef wraps err under code with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return wrap(err, code, fmt.Sprintf(format, args...))
}

func wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	out := &Error{Code: CodeInternal, Message: message, Cause: err}

	var cause *Error
	if errors.As(err, &cause) {
		out.Code = cause.Code
		out.Meta = maps.Clone(cause.Meta)
	}
	if code != "" {
		out.Code = code
	}
	return out
}

// NotFound creates a not found error
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf creates a not found error with formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error { return New(CodeInternal, message) }

// Unavailable creates an unavailable error
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// FailedPrecondition creates a failed precondition error
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// DataLoad reports a dataset that could not be loaded. The registry is
// unusable and startup halts.
func DataLoad(message string) *Error { return New(CodeDataLoad, message) }

// DataLoadf creates a data load error with formatted message
func DataLoadf(format string, args ...any) *Error { return Newf(CodeDataLoad, format, args...) }

// InvalidSelection reports a rejected draft edit. The draft is unchanged.
func InvalidSelection(message string) *Error { return New(CodeInvalidSelection, message) }

// InvalidSelectionf creates an invalid selection error with formatted message
func InvalidSelectionf(format string, args ...any) *Error {
	return Newf(CodeInvalidSelection, format, args...)
}

// InconsistentDraft reports a draft that reached derivation without passing
// validation
func InconsistentDraft(message string) *Error { return New(CodeInconsistentDraft, message) }

// InconsistentDraftf creates an inconsistent draft error with formatted message
func InconsistentDraftf(format string, args ...any) *Error {
	return Newf(CodeInconsistentDraft, format, args...)
}

// ExportMapping reports a draft that cannot be rendered in an export format
func ExportMapping(message string) *Error { return New(CodeExportMapping, message) }

// ExportMappingf creates an export mapping error with formatted message
func ExportMappingf(format string, args ...any) *Error {
	return Newf(CodeExportMapping, format, args...)
}
