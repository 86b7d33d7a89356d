package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Display renders err as a single human-readable line for the CLI
// boundary. Field metadata is appended in key order so output is stable.
// Codes that are not user facing collapse to a generic message; the full
// error belongs in the log, not on the terminal.
func Display(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if !errors.As(err, &customErr) {
		return strings.TrimSpace(err.Error())
	}

	if !customErr.Code.UserFacing() {
		return "internal error: the character could not be processed"
	}

	msg := customErr.Message
	if field, ok := customErr.Meta["field"]; ok {
		msg = fmt.Sprintf("%s (field %v)", msg, field)
	}

	if v, ok := customErr.Meta["validation_errors"].(map[string][]string); ok && len(v) > 0 {
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s %s", k, strings.Join(v[k], ", ")))
		}
		return "invalid configuration: " + strings.Join(parts, "; ")
	}

	if customErr.Cause != nil && customErr.Code == CodeDataLoad {
		msg = fmt.Sprintf("%s: %v", msg, customErr.Cause)
	}

	return strings.ReplaceAll(msg, "\n", " ")
}
