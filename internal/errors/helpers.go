package errors

import (
	"errors"
)

// As is errors.As for the coded error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is, re-exported so callers need one errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost coded error in the chain.
// Uncoded errors are Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := coded(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost coded error
func GetMeta(err error) map[string]any {
	if e, ok := coded(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := coded(err); ok {
		return e.Message
	}
	return err.Error()
}

func coded(err error) (*Error, bool) {
	var e *Error
	if err != nil && errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err carries code
func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool { return HasCode(err, CodeInvalidArgument) }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return HasCode(err, CodeInternal) }

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool { return HasCode(err, CodeUnavailable) }

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool { return HasCode(err, CodeFailedPrecondition) }

// IsCanceled checks if an error is a canceled error
func IsCanceled(err error) bool { return HasCode(err, CodeCanceled) }

// IsDataLoad checks if an error is a data load error
func IsDataLoad(err error) bool { return HasCode(err, CodeDataLoad) }

// IsInvalidSelection checks if an error is an invalid selection error
func IsInvalidSelection(err error) bool { return HasCode(err, CodeInvalidSelection) }

// IsInconsistentDraft checks if an error is an inconsistent draft error
func IsInconsistentDraft(err error) bool { return HasCode(err, CodeInconsistentDraft) }

// IsExportMapping checks if an error is an export mapping error
func IsExportMapping(err error) bool { return HasCode(err, CodeExportMapping) }
