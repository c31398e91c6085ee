package form

import "fmt"

// Step is a page of the create/edit wizard.
type Step int

const (
	StepBasics Step = iota
	StepSchedule
	StepPricing
	StepExtras

	numSteps
)

var stepNames = [numSteps]string{"basics", "schedule", "pricing", "extras"}

// Extras (audio practice, topics, publication) has no validated fields.
var stepFields = [numSteps][]Field{
	StepBasics:   {FieldCode, FieldName, FieldDescription, FieldLanguage, FieldLevel},
	StepSchedule: {FieldDurationWeeks, FieldTotalSlots},
	StepPricing:  {FieldFeeFull, FieldFeeInstallment},
}

// Steps returns the wizard steps in order.
func Steps() []Step {
	out := make([]Step, numSteps)
	for i := range out {
		out[i] = Step(i)
	}
	return out
}

func (s Step) valid() bool { return s >= 0 && s < numSteps }

func (s Step) String() string {
	if !s.valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("unknown wizard step %d", int(s))
	}
	return []byte(stepNames[s]), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	for i, n := range stepNames {
		if n == string(b) {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", string(b))
}

// StepFields returns the validated fields shown on step s.
func StepFields(s Step) []Field {
	if !s.valid() {
		return nil
	}
	return append([]Field(nil), stepFields[s]...)
}

// StepErrors returns the errors of the fields on step s.
func (f Form) StepErrors(s Step) Errors {
	return f.Errors().Only(StepFields(s)...)
}

// Next touches the current step's fields and moves forward when they are
// all valid. The last step stays put.
func (f Form) Next() (Form, bool) {
	f.Touched = f.Touched.Touch(StepFields(f.Step)...)
	if !f.StepErrors(f.Step).Empty() {
		return f, false
	}
	if f.Step < numSteps-1 {
		f.Step++
	}
	return f, true
}

// Back moves to the previous step without validating anything.
func (f Form) Back() Form {
	if f.Step > StepBasics {
		f.Step--
	}
	return f
}

// Goto jumps to step s. Going back is always allowed; going forward requires
// every step before s to be valid.
func (f Form) Goto(s Step) (Form, bool) {
	if !s.valid() {
		return f, false
	}
	if s <= f.Step {
		f.Step = s
		return f, true
	}
	for prev := StepBasics; prev < s; prev++ {
		if !f.StepErrors(prev).Empty() {
			return f, false
		}
	}
	f.Step = s
	return f, true
}
