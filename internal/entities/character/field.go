package character

// Field names one editable part of a draft. Locks are tracked per field.
type Field string

// Draft fields
const (
	FieldName       Field = "name"
	FieldLevel      Field = "level"
	FieldRace       Field = "race"
	FieldSubrace    Field = "subrace"
	FieldClass      Field = "class"
	FieldSubclass   Field = "subclass"
	FieldBackground Field = "background"
	FieldAlignment  Field = "alignment"
	FieldGender     Field = "gender"
	FieldHometown   Field = "hometown"
	FieldAbilities  Field = "abilities"
	FieldSkills     Field = "skills"
	FieldExpertise  Field = "expertise"
	FieldLanguages  Field = "languages"
	FieldTools      Field = "tools"
	FieldFeats      Field = "feats"
	FieldSpells     Field = "spells"
	FieldEquipment  Field = "equipment"
	FieldCurrency   Field = "currency"
	FieldBiography  Field = "biography"
	FieldNotes      Field = "notes"
)

// Fields returns every field in synthesis order
func Fields() []Field {
	return []Field{
		FieldLevel, FieldRace, FieldSubrace, FieldClass, FieldSubclass,
		FieldBackground, FieldAlignment, FieldAbilities, FieldSkills,
		FieldExpertise, FieldLanguages, FieldTools, FieldFeats, FieldSpells,
		FieldEquipment, FieldCurrency, FieldGender, FieldName, FieldHometown,
		FieldBiography, FieldNotes,
	}
}

// ParseField resolves a field name
func ParseField(s string) (Field, bool) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Locks records which fields the user set explicitly
type Locks map[Field]bool

// Locked reports whether the field is locked
func (l Locks) Locked(f Field) bool {
	return l[f]
}

// Clone copies the lock set
func (l Locks) Clone() Locks {
	out := make(Locks, len(l))
	for k, v := range l {
		if v {
			out[k] = true
		}
	}
	return out
}

// Snapshot returns a value for every field, locked or not
func (l Locks) Snapshot() map[Field]bool {
	out := make(map[Field]bool, len(Fields()))
	for _, f := range Fields() {
		out[f] = l[f]
	}
	return out
}
