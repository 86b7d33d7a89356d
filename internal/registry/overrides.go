package registry

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// Override file names inside the overrides directory
const (
	NamesFile     = "names.csv"
	HometownsFile = "hometowns.csv"

	// Wildcard matches any race or gender
	Wildcard = "any"
)

// NameTable maps race and gender to candidate names
type NameTable struct {
	entries map[string]map[string][]string
	size    int
}

// NewNameTable returns an empty table
func NewNameTable() *NameTable {
	return &NameTable{entries: make(map[string]map[string][]string)}
}

// Add registers a name. Blank race or gender means any.
func (t *NameTable) Add(race, gender, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	race, gender = normalizeKey(race), normalizeKey(gender)
	if t.entries[race] == nil {
		t.entries[race] = make(map[string][]string)
	}
	t.entries[race][gender] = append(t.entries[race][gender], name)
	t.size++
}

// Len returns the number of names
func (t *NameTable) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Lookup returns the first non-empty tier in the order exact race and
// gender, race and any gender, any race and the gender, any race and any
// gender. Hyphenated races also try their parts before falling back to any.
func (t *NameTable) Lookup(race, gender string) []string {
	if t.Len() == 0 {
		return nil
	}
	gender = normalizeKey(gender)
	for _, r := range RaceCandidates(race) {
		if names := t.entries[r][gender]; len(names) > 0 {
			return append([]string(nil), names...)
		}
		if names := t.entries[r][Wildcard]; len(names) > 0 {
			return append([]string(nil), names...)
		}
	}
	if names := t.entries[Wildcard][gender]; len(names) > 0 {
		return append([]string(nil), names...)
	}
	return append([]string(nil), t.entries[Wildcard][Wildcard]...)
}

// PlaceTable maps race to candidate hometowns
type PlaceTable struct {
	entries map[string][]string
	size    int
}

// NewPlaceTable returns an empty table
func NewPlaceTable() *PlaceTable {
	return &PlaceTable{entries: make(map[string][]string)}
}

// Add registers a place. Blank race means any.
func (t *PlaceTable) Add(race, place string) {
	place = strings.TrimSpace(place)
	if place == "" {
		return
	}
	race = normalizeKey(race)
	t.entries[race] = append(t.entries[race], place)
	t.size++
}

// Len returns the number of places
func (t *PlaceTable) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Lookup returns places for the race, falling back to any
func (t *PlaceTable) Lookup(race string) []string {
	if t.Len() == 0 {
		return nil
	}
	for _, r := range RaceCandidates(race) {
		if places := t.entries[r]; len(places) > 0 {
			return append([]string(nil), places...)
		}
	}
	return append([]string(nil), t.entries[Wildcard]...)
}

// RaceCandidates returns the race key followed by its hyphenated parts
func RaceCandidates(race string) []string {
	r := normalizeKey(race)
	if r == Wildcard {
		return nil
	}
	out := []string{r}
	for _, part := range strings.Split(r, "-") {
		if part != "" && part != r {
			out = append(out, part)
		}
	}
	return out
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "*" {
		return Wildcard
	}
	return strings.ReplaceAll(s, " ", "-")
}

// loadOverrides reads the optional override tables. A file that cannot be
// read or parsed is logged and replaced by an empty table.
func loadOverrides(dir string) (*NameTable, *PlaceTable) {
	names := NewNameTable()
	places := NewPlaceTable()
	if dir == "" {
		return names, places
	}

	if err := readCSV(filepath.Join(dir, NamesFile), []string{"race", "gender", "name"}, func(row []string) {
		names.Add(row[0], row[1], row[2])
	}); err != nil {
		slog.Warn("ignoring name overrides", "error", err)
		names = NewNameTable()
	}
	if err := readCSV(filepath.Join(dir, HometownsFile), []string{"race", "place"}, func(row []string) {
		places.Add(row[0], row[1])
	}); err != nil {
		slog.Warn("ignoring hometown overrides", "error", err)
		places = NewPlaceTable()
	}
	return names, places
}

// readCSV feeds each row with at least len(header) columns to fn. A
// missing file is not an error; a header row matching the expected
// columns is skipped.
func readCSV(path string, header []string, fn func([]string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWithCodef(err, errors.CodeDataLoad, "failed to open %s", filepath.Base(path))
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeDataLoad, "failed to parse %s", filepath.Base(path))
		}
		if len(row) < len(header) {
			continue
		}
		if first {
			first = false
			if isHeader(row, header) {
				continue
			}
		}
		fn(row)
	}
}

func isHeader(row, header []string) bool {
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), h) {
			return false
		}
	}
	return true
}
