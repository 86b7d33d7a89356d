package srd

import (
	"encoding/json"
	"fmt"
)

// NewEntry returns an empty record of the category's type
func NewEntry(category Category) (Entry, error) {
	switch category {
	case CategoryRace:
		return &Race{}, nil
	case CategorySubrace:
		return &Subrace{}, nil
	case CategoryClass:
		return &Class{}, nil
	case CategorySubclass:
		return &Subclass{}, nil
	case CategoryLevel:
		return &Level{}, nil
	case CategoryBackground:
		return &Background{}, nil
	case CategoryFeat:
		return &Feat{}, nil
	case CategorySpell:
		return &Spell{}, nil
	case CategoryEquipment:
		return &Equipment{}, nil
	case CategoryEquipmentCategory:
		return &EquipmentCategory{}, nil
	case CategoryFeature:
		return &Feature{}, nil
	case CategoryTrait:
		return &Trait{}, nil
	case CategoryProficiency:
		return &Proficiency{}, nil
	case CategoryLanguage:
		return &Language{}, nil
	case CategoryAlignment:
		return &Alignment{}, nil
	case CategorySkill:
		return &Skill{}, nil
	}
	return nil, fmt.Errorf("unknown category %q", category)
}

// DecodeBatch decodes a JSON array of records. Each record either becomes
// an entry or a diagnostic; a document that is not an array yields a single
// diagnostic and no entries.
func DecodeBatch(category Category, data []byte) *Batch {
	batch := &Batch{Category: category}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		batch.Diagnostics = append(batch.Diagnostics, Diagnostic{
			Category: category,
			Position: -1,
			Reason:   "document is not a record list: " + err.Error(),
		})
		return batch
	}

	for i, raw := range raws {
		entry, err := DecodeRecord(category, raw)
		if err != nil {
			batch.Diagnostics = append(batch.Diagnostics, Diagnostic{
				Category: category,
				Index:    peekIndex(raw),
				Position: i,
				Reason:   err.Error(),
			})
			continue
		}
		batch.Entries = append(batch.Entries, entry)
	}
	return batch
}

// DecodeRecord decodes and sanity-checks one record
func DecodeRecord(category Category, raw []byte) (Entry, error) {
	entry, err := NewEntry(category)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, entry); err != nil {
		return nil, fmt.Errorf("malformed record: %w", err)
	}
	if entry.GetIndex() == "" {
		return nil, fmt.Errorf("record has no index")
	}
	if err := check(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func check(entry Entry) error {
	switch e := entry.(type) {
	case *Class:
		if e.HitDie <= 0 {
			return fmt.Errorf("class %s has no hit die", e.Index)
		}
	case *Level:
		if e.Level <= 0 {
			return fmt.Errorf("level row %s has no level", e.Index)
		}
		if e.Class.Key() == "" {
			return fmt.Errorf("level row %s has no class", e.Index)
		}
	case *Spell:
		if e.Level < 0 || e.Level > 9 {
			return fmt.Errorf("spell %s has level %d", e.Index, e.Level)
		}
	case *Subrace:
		if e.Race.Key() == "" {
			return fmt.Errorf("subrace %s has no race", e.Index)
		}
	case *Subclass:
		if e.Class.Key() == "" {
			return fmt.Errorf("subclass %s has no class", e.Index)
		}
	default:
		if entry.GetName() == "" {
			return fmt.Errorf("record %s has no name", entry.GetIndex())
		}
	}
	return nil
}

func peekIndex(raw []byte) string {
	var head struct {
		Index string `json:"index"`
	}
	_ = json.Unmarshal(raw, &head)
	return head.Index
}
