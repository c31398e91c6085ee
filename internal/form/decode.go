package form

import (
	"math"
	"strings"

	"coursedesk/internal/model"

	"github.com/mitchellh/mapstructure"
)

// Decode reads raw UI input (JSON field names, loosely typed values) into a
// fresh create draft. See DecodeInto.
func Decode(raw map[string]any) (model.CourseFormData, Errors) {
	return DecodeInto(model.NewCourseFormData(), raw)
}

// DecodeInto applies the values in raw on top of base. Keys absent from raw
// keep the base value. Values that cannot be read as the field's type are
// reported as input errors and leave the base value in place; nothing in
// raw can make DecodeInto panic.
func DecodeInto(base model.CourseFormData, raw map[string]any) (model.CourseFormData, Errors) {
	d := base.Clone()
	errs := Errors{}

	str := func(key string, dst *string, f Field, checked bool) {
		v, ok := raw[key]
		if !ok {
			return
		}
		var s string
		if err := mapstructure.WeakDecode(v, &s); err != nil {
			if checked {
				errs[f] = f.Label() + " must be text"
			}
			return
		}
		*dst = s
	}
	str("code", &d.Code, FieldCode, true)
	str("name", &d.Name, FieldName, true)
	str("description", &d.Description, FieldDescription, true)
	str("language", &d.Language, FieldLanguage, true)
	str("level", &d.Level, FieldLevel, true)
	str("createdBy", &d.CreatedBy, 0, false)
	str("audioPracticeUrl", &d.AudioPracticeURL, 0, false)

	whole := func(key string, dst *int, f Field) {
		v, ok := raw[key]
		if !ok {
			return
		}
		n, ok := decodeNumber(v)
		if !ok || n != math.Trunc(n) || math.Abs(n) > 1e9 {
			errs[f] = f.Label() + " must be a whole number"
			return
		}
		*dst = int(n)
	}
	whole("durationWeeks", &d.DurationWeeks, FieldDurationWeeks)
	whole("totalSlots", &d.TotalSlots, FieldTotalSlots)

	amount := func(key string, dst *float64, f Field) {
		v, ok := raw[key]
		if !ok {
			return
		}
		n, ok := decodeNumber(v)
		if !ok {
			errs[f] = f.Label() + " must be a number"
			return
		}
		*dst = n
	}
	amount("feeFull", &d.FeeFull, FieldFeeFull)
	amount("feeInstallment", &d.FeeInstallment, FieldFeeInstallment)

	if v, ok := raw["isActive"]; ok {
		var b bool
		if err := mapstructure.WeakDecode(v, &b); err == nil {
			d.IsActive = b
		}
	}
	if v, ok := raw["topics"]; ok {
		var topics []string
		if err := mapstructure.WeakDecode(v, &topics); err == nil {
			d.Topics = cleanTopics(topics)
		}
	}
	return d, errs
}

// decodeNumber accepts JSON numbers, numeric strings and blanks (read as 0).
func decodeNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	var n float64
	if err := mapstructure.WeakDecode(v, &n); err != nil {
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func cleanTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = appendTopic(out, t)
	}
	return out
}

func appendTopic(topics []string, label string) []string {
	label = strings.TrimSpace(label)
	if label == "" {
		return topics
	}
	for _, t := range topics {
		if strings.EqualFold(t, label) {
			return topics
		}
	}
	return append(topics, label)
}
