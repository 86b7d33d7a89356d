package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// Character builder domain codes
	CodeDataLoad          Code = "DATA_LOAD"
	CodeInvalidSelection  Code = "INVALID_SELECTION"
	CodeInconsistentDraft Code = "INCONSISTENT_DRAFT"
	CodeExportMapping     Code = "EXPORT_MAPPING"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status used by the CLI for the code.
// A data load failure is the only fatal startup condition and gets its own
// status so scripts can tell it apart from a rejected edit.
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeDataLoad:
		return 2
	case CodeInvalidSelection, CodeInvalidArgument, CodeExportMapping, CodeFailedPrecondition:
		return 3
	case CodeNotFound:
		return 4
	case CodeUnavailable:
		return 5
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}

// UserFacing reports whether messages carrying the code can be shown to a
// user as-is. Internal and inconsistent-draft failures are programming
// errors and are reported generically.
func (c Code) UserFacing() bool {
	switch c {
	case CodeInternal, CodeInconsistentDraft:
		return false
	default:
		return true
	}
}
