package form

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"coursedesk/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	courseCodePattern = regexp.MustCompile(`^[A-Z]{3}-[0-9]{3}$`)
	courseNamePattern = regexp.MustCompile(`^[\p{L}\p{N} .,:;!?'"&()/+-]+$`)
)

// draftRules is the rule table. Strings are trimmed before evaluation.
type draftRules struct {
	Code           string  `validate:"required,coursecode"`
	Name           string  `validate:"required,min=5,max=100,coursename"`
	Description    string  `validate:"required"`
	Language       string  `validate:"required,language"`
	Level          string  `validate:"required,level"`
	DurationWeeks  int     `validate:"min=1"`
	TotalSlots     int     `validate:"min=1"`
	FeeFull        float64 `validate:"finite,min=0"`
	FeeInstallment float64 `validate:"finite,min=0"`
}

var ruleFields = map[string]Field{
	"Code":           FieldCode,
	"Name":           FieldName,
	"Description":    FieldDescription,
	"Language":       FieldLanguage,
	"Level":          FieldLevel,
	"DurationWeeks":  FieldDurationWeeks,
	"TotalSlots":     FieldTotalSlots,
	"FeeFull":        FieldFeeFull,
	"FeeInstallment": FieldFeeInstallment,
}

var rules = newRuleValidator()

func newRuleValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "coursecode", func(fl validator.FieldLevel) bool {
		return courseCodePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "coursename", func(fl validator.FieldLevel) bool {
		return courseNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "language", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseLanguage(fl.Field().String())
		return ok
	})
	mustRegister(v, "level", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseLevel(fl.Field().String())
		return ok
	})
	mustRegister(v, "finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Evaluate checks every field of d against its rule and returns the failing
// fields. Each rule looks only at its own field, and Evaluate never panics.
func Evaluate(d model.CourseFormData) Errors {
	out := Errors{}
	err := rules.Struct(draftRules{
		Code:           strings.TrimSpace(d.Code),
		Name:           strings.TrimSpace(d.Name),
		Description:    strings.TrimSpace(d.Description),
		Language:       strings.TrimSpace(d.Language),
		Level:          strings.TrimSpace(d.Level),
		DurationWeeks:  d.DurationWeeks,
		TotalSlots:     d.TotalSlots,
		FeeFull:        d.FeeFull,
		FeeInstallment: d.FeeInstallment,
	})
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable if the rule table itself is broken.
		for _, f := range Fields() {
			out[f] = f.Label() + " could not be validated"
		}
		return out
	}
	for _, fe := range fieldErrs {
		f, ok := ruleFields[fe.StructField()]
		if !ok {
			continue
		}
		if _, seen := out[f]; !seen {
			out[f] = message(f, fe.Tag())
		}
	}
	return out
}

func message(f Field, tag string) string {
	switch tag {
	case "required":
		return f.Label() + " is required"
	case "coursecode":
		return "Course code must match the format AAA-999"
	case "coursename":
		return "Course name may only contain letters, numbers, spaces and basic punctuation"
	case "language":
		return "Language must be one of: " + joinValues(model.Languages)
	case "level":
		return "Level must be one of: " + joinValues(model.Levels)
	case "finite":
		return f.Label() + " must be a number"
	}

	switch f {
	case FieldName:
		if tag == "max" {
			return "Course name must be at most 100 characters"
		}
		return "Course name must be at least 5 characters"
	case FieldDurationWeeks:
		return "Duration must be at least 1 week"
	case FieldTotalSlots:
		return "Total slots must be at least 1"
	case FieldFeeFull, FieldFeeInstallment:
		return f.Label() + " cannot be negative"
	}
	return f.Label() + " is invalid"
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Normalize trims the free-text fields of d the same way Evaluate sees them.
func Normalize(d model.CourseFormData) model.CourseFormData {
	out := d.Clone()
	out.Code = strings.TrimSpace(d.Code)
	out.Name = strings.TrimSpace(d.Name)
	out.Description = strings.TrimSpace(d.Description)
	out.Language = strings.TrimSpace(d.Language)
	out.Level = strings.TrimSpace(d.Level)
	out.CreatedBy = strings.TrimSpace(d.CreatedBy)
	out.AudioPracticeURL = strings.TrimSpace(d.AudioPracticeURL)
	return out
}
