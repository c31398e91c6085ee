package form

import (
	"encoding/json"
	"testing"
)

func TestNextBlocksOnInvalidStep(t *testing.T) {
	f := New()
	next, ok := f.Next()
	if ok || next.Step != StepBasics {
		t.Fatalf("expected to stay on basics, got step %s", next.Step)
	}
	for _, field := range StepFields(StepBasics) {
		if !next.Touched.Has(field) {
			t.Errorf("expected %s to be touched", field)
		}
	}
	if next.Touched.Has(FieldDurationWeeks) {
		t.Error("expected later steps to stay untouched")
	}
}

func TestWizardWalkthrough(t *testing.T) {
	f := New().Load(map[string]any{
		"code":        "SPA-101",
		"name":        "Spanish Basics",
		"description": "First steps in Spanish.",
		"language":    "Spanish",
		"level":       "Beginner",
	})

	var ok bool
	if f, ok = f.Next(); !ok || f.Step != StepSchedule {
		t.Fatalf("expected schedule step, got %s", f.Step)
	}
	f = f.Set("totalSlots", 0)
	if f, ok = f.Next(); ok {
		t.Fatal("expected zero slots to block the schedule step")
	}
	f = f.Set("totalSlots", 15)
	if f, ok = f.Next(); !ok || f.Step != StepPricing {
		t.Fatalf("expected pricing step, got %s", f.Step)
	}
	if f, ok = f.Next(); !ok || f.Step != StepExtras {
		t.Fatalf("expected extras step, got %s", f.Step)
	}
	if f, ok = f.Next(); !ok || f.Step != StepExtras {
		t.Fatalf("expected to stay on the last step, got %s", f.Step)
	}
	if f = f.Back(); f.Step != StepPricing {
		t.Errorf("expected pricing after back, got %s", f.Step)
	}
}

func TestGoto(t *testing.T) {
	f := New()
	if _, ok := f.Goto(StepPricing); ok {
		t.Error("expected jumping ahead over invalid steps to fail")
	}
	f.Step = StepPricing
	back, ok := f.Goto(StepBasics)
	if !ok || back.Step != StepBasics {
		t.Error("expected going back to always succeed")
	}
	if _, ok := f.Goto(Step(42)); ok {
		t.Error("expected unknown step to be rejected")
	}
}

func TestFieldAndStepText(t *testing.T) {
	errs := Errors{FieldDurationWeeks: "Duration must be at least 1 week"}
	b, err := json.Marshal(errs)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(b) != `{"durationWeeks":"Duration must be at least 1 week"}` {
		t.Errorf("unexpected JSON %s", b)
	}

	var back Errors
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if back.Get(FieldDurationWeeks) == "" {
		t.Errorf("expected durationWeeks key to survive, got %v", back)
	}

	var s Step
	if err := s.UnmarshalText([]byte("pricing")); err != nil || s != StepPricing {
		t.Errorf("expected pricing, got %s (%v)", s, err)
	}
	if touched := TouchedFields("code", "bogus", "feeFull"); len(touched.List()) != 2 {
		t.Errorf("expected two touched fields, got %v", touched.List())
	}
}
