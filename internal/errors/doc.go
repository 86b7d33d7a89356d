// Package errors provides the coded error type shared by every layer of the
// character builder.
//
// Errors carry a Code, a message, an optional cause and metadata:
//
//	err := errors.InvalidSelectionf("subclass %q does not belong to %q", sub, class).
//	    WithMeta("field", "subclass")
//
// The domain codes map onto the failure modes of the builder:
//   - DataLoad: the reference dataset could not be loaded; startup halts
//   - InvalidSelection: a single draft edit was rejected; the draft is unchanged
//   - InconsistentDraft: derivation ran on a draft that skipped validation
//   - ExportMapping: a draft is not complete enough to export
//
// Wrapping keeps the code of the innermost coded error:
//
//	if err := source.Fetch(ctx, cat); err != nil {
//	    return errors.Wrapf(err, "failed to fetch %s", cat)
//	}
//
// Validation of configuration structs uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("level", input.Level, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// At the CLI boundary Display renders any error as one line and
// Code.ExitCode picks the process status.
package errors
