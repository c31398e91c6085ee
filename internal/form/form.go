package form

import (
	"coursedesk/internal/model"
)

// Form is the state of one create or edit session. Every method returns a
// new Form and leaves the receiver unchanged.
type Form struct {
	Draft   model.CourseFormData
	Touched Touched
	Step    Step

	// input holds values Decode could not read; they win over rule errors.
	input Errors
}

// New starts a create session.
func New() Form {
	return Form{Draft: model.NewCourseFormData()}
}

// FromCourse starts an edit session seeded from a persisted course. The
// course gets no exemption from the rules.
func FromCourse(c model.Course) Form {
	return Form{Draft: c.FormData()}
}

// Load applies raw UI values to the draft, as typing into those fields would.
func (f Form) Load(raw map[string]any) Form {
	draft, inputErrs := DecodeInto(f.Draft, raw)
	next := f.input.clone()
	for key := range raw {
		if field, ok := ParseField(key); ok {
			delete(next, field)
		}
	}
	for field, msg := range inputErrs {
		next[field] = msg
	}
	f.Draft = draft
	f.input = next
	return f
}

// Set edits a single field by its JSON name.
func (f Form) Set(key string, value any) Form {
	return f.Load(map[string]any{key: value})
}

// Blur marks fields as left by the user.
func (f Form) Blur(fields ...Field) Form {
	f.Touched = f.Touched.Touch(fields...)
	return f
}

// Errors returns the errors of every field, touched or not.
func (f Form) Errors() Errors {
	out := Evaluate(f.Draft)
	for field, msg := range f.input {
		out[field] = msg
	}
	return out
}

// Visible returns the errors the UI should show: those of touched fields.
func (f Form) Visible() Errors {
	return f.Errors().Only(f.Touched.List()...)
}

// Submittable reports whether the draft passes every rule.
func (f Form) Submittable() bool {
	return f.Errors().Empty()
}

// AttemptSubmit reports whether the draft may be sent to the course service.
// When it may not, every field is marked touched so all errors show at once.
func (f Form) AttemptSubmit() (Form, bool) {
	if f.Submittable() {
		return f, true
	}
	f.Touched = f.Touched.TouchAll()
	return f, false
}

// AddTopic appends a trimmed topic label unless it is blank or already listed.
func (f Form) AddTopic(label string) Form {
	f.Draft = f.Draft.Clone()
	f.Draft.Topics = appendTopic(f.Draft.Topics, label)
	return f
}

// RemoveTopic drops the topic at index i. Out of range indexes are ignored.
func (f Form) RemoveTopic(i int) Form {
	if i < 0 || i >= len(f.Draft.Topics) {
		return f
	}
	f.Draft = f.Draft.Clone()
	f.Draft.Topics = append(f.Draft.Topics[:i], f.Draft.Topics[i+1:]...)
	return f
}
