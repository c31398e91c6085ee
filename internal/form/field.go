// Package form decides whether a course draft may be submitted and which
// field errors the create/edit wizard shows.
//
// Rule evaluation is a pure function of the draft (Evaluate). The Form value
// adds the per-field touched state and the wizard step on top of it.
package form

import "fmt"

// Field is a validated course form field.
type Field int

const (
	FieldCode Field = iota
	FieldName
	FieldDescription
	FieldLanguage
	FieldLevel
	FieldDurationWeeks
	FieldTotalSlots
	FieldFeeFull
	FieldFeeInstallment

	numFields
)

var fieldNames = [numFields]string{
	FieldCode:           "code",
	FieldName:           "name",
	FieldDescription:    "description",
	FieldLanguage:       "language",
	FieldLevel:          "level",
	FieldDurationWeeks:  "durationWeeks",
	FieldTotalSlots:     "totalSlots",
	FieldFeeFull:        "feeFull",
	FieldFeeInstallment: "feeInstallment",
}

var fieldLabels = [numFields]string{
	FieldCode:           "Course code",
	FieldName:           "Course name",
	FieldDescription:    "Description",
	FieldLanguage:       "Language",
	FieldLevel:          "Level",
	FieldDurationWeeks:  "Duration",
	FieldTotalSlots:     "Total slots",
	FieldFeeFull:        "Full fee",
	FieldFeeInstallment: "Installment fee",
}

// Fields returns every validated field in form order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

func (f Field) valid() bool { return f >= 0 && f < numFields }

// String returns the JSON name of the field.
func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label is the human readable field name used in messages.
func (f Field) Label() string {
	if !f.valid() {
		return f.String()
	}
	return fieldLabels[f]
}

func (f Field) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("unknown form field %d", int(f))
	}
	return []byte(fieldNames[f]), nil
}

func (f *Field) UnmarshalText(b []byte) error {
	parsed, ok := ParseField(string(b))
	if !ok {
		return fmt.Errorf("unknown form field %q", string(b))
	}
	*f = parsed
	return nil
}

// ParseField looks a field up by its JSON name.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Errors maps a field to its error message. Valid fields are absent.
type Errors map[Field]string

// Empty reports whether no field has an error.
func (e Errors) Empty() bool { return len(e) == 0 }

// Get returns the error for f, or "" when f is valid.
func (e Errors) Get(f Field) string { return e[f] }

// Only returns the errors of the given fields.
func (e Errors) Only(fields ...Field) Errors {
	out := Errors{}
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for f, msg := range e {
		out[f] = msg
	}
	return out
}

// Touched records which fields the user has left at least once.
type Touched [numFields]bool

// TouchedFields builds a Touched set from field names. Unknown names are ignored.
func TouchedFields(names ...string) Touched {
	var t Touched
	for _, n := range names {
		if f, ok := ParseField(n); ok {
			t[f] = true
		}
	}
	return t
}

func (t Touched) Has(f Field) bool {
	return f.valid() && t[f]
}

func (t Touched) Touch(fields ...Field) Touched {
	for _, f := range fields {
		if f.valid() {
			t[f] = true
		}
	}
	return t
}

func (t Touched) TouchAll() Touched {
	for i := range t {
		t[i] = true
	}
	return t
}

// List returns the touched fields in form order.
func (t Touched) List() []Field {
	var out []Field
	for i, touched := range t {
		if touched {
			out = append(out, Field(i))
		}
	}
	return out
}
