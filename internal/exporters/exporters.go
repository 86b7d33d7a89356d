// Package exporters holds what the export formats share: the format names
// and the completeness check every format applies before rendering.
package exporters

import (
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// Format names an export format
type Format string

// Export formats
const (
	FormatActor     Format = "actor"
	FormatStatblock Format = "statblock"
)

// Formats lists every export format
func Formats() []Format {
	return []Format{FormatActor, FormatStatblock}
}

// ParseFormat resolves a format name
func ParseFormat(s string) (Format, bool) {
	key := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Formats() {
		if f == key {
			return f, true
		}
	}
	return "", false
}

// RequiredFields must be set before any export
var RequiredFields = []character.Field{
	character.FieldRace,
	character.FieldClass,
	character.FieldLevel,
}

// CheckComplete returns an ExportMapping error naming the required fields
// the draft does not set
func CheckComplete(d *character.Draft) error {
	missing := d.Missing(RequiredFields...)
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return errors.ExportMappingf("draft is incomplete: %s not set", strings.Join(names, ", ")).
		WithMeta("missing", names)
}
