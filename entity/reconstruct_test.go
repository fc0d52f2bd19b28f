package entity

import (
	"testing"
)

func TestReconstruct_EmptyInput(t *testing.T) {
	if got := Reconstruct(nil, "some text"); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
	if got := Reconstruct([]Entity{}, "some text"); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
}

func TestReconstruct_MergesAdjacentFragments(t *testing.T) {
	text := "Patient has hypertension today."
	fragments := []Entity{
		{Word: "hyper", Entity: "DISEASE", Start: 12, End: 17, Score: 0.9},
		{Word: "tension", Entity: "DISEASE", Start: 17, End: 24, Score: 0.8},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged entity, got %d", len(got))
	}
	if got[0].Word != "hypertension" {
		t.Errorf("expected word 'hypertension', got %q", got[0].Word)
	}
	if got[0].Entity != "DISEASE" {
		t.Errorf("expected label from first fragment, got %q", got[0].Entity)
	}
	if got[0].Score != 0.9 {
		t.Errorf("expected score from first fragment (0.9), got %v", got[0].Score)
	}
}

func TestReconstruct_MergesAcrossSmallGap(t *testing.T) {
	text := "Recommended blood tests today."
	fragments := []Entity{
		{Word: "blood", Entity: "Diagnostic_procedure", Start: 12, End: 17, Score: 0.95},
		// Starts 1 past the previous end: a separating space.
		{Word: "tests", Entity: "Diagnostic_procedure", Start: 18, End: 23, Score: 0.90},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged entity, got %d", len(got))
	}
	if got[0].Word != "blood tests" {
		t.Errorf("expected 'blood tests', got %q", got[0].Word)
	}
}

func TestReconstruct_GapBeyondLimitNotMerged(t *testing.T) {
	text := "hypertension and diabetes"
	fragments := []Entity{
		{Word: "hypertension", Entity: "DISEASE", Start: 0, End: 12, Score: 0.9},
		{Word: "diabetes", Entity: "DISEASE", Start: 17, End: 25, Score: 0.8},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(got))
	}
	if got[0].Word != "hypertension" || got[1].Word != "diabetes" {
		t.Errorf("unexpected words: %q, %q", got[0].Word, got[1].Word)
	}
}

func TestReconstruct_StripsTrailingPunctuation(t *testing.T) {
	text := "Prescribed metformin."
	fragments := []Entity{
		{Word: "metformin", Entity: "Medication", Start: 11, End: 21, Score: 0.9},
	}

	got := Reconstruct(fragments, text)
	if got[0].Word != "metformin" {
		t.Errorf("expected trailing period stripped, got %q", got[0].Word)
	}
}

func TestReconstruct_OutOfBoundsKeepsOriginalWord(t *testing.T) {
	text := "short"
	fragments := []Entity{
		{Word: "##frag", Entity: "DISEASE", Start: 40, End: 52, Score: 0.5},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(got))
	}
	if got[0].Word != "##frag" {
		t.Errorf("expected original fragment word kept, got %q", got[0].Word)
	}
}

func TestReconstruct_InvertedSpanYieldsEmptyWord(t *testing.T) {
	text := "Patient has hypertension today."
	fragments := []Entity{
		{Word: "ghost", Entity: "DISEASE", Start: 5, End: 3, Score: 0.5},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(got))
	}
	if got[0].Word != "" {
		t.Errorf("expected empty word for inverted span, got %q", got[0].Word)
	}
}

func TestReconstruct_NegativeStartKeepsOriginalWord(t *testing.T) {
	text := "some text"
	fragments := []Entity{
		{Word: "frag", Entity: "DISEASE", Start: -3, End: 4, Score: 0.5},
	}

	got := Reconstruct(fragments, text)
	if got[0].Word != "frag" {
		t.Errorf("expected original word for negative offset, got %q", got[0].Word)
	}
}

func TestReconstruct_OrderPreserved(t *testing.T) {
	text := "fever, cough and fatigue present"
	fragments := []Entity{
		{Word: "fever", Entity: "Sign_symptom", Start: 0, End: 5, Score: 0.9},
		{Word: "cough", Entity: "Sign_symptom", Start: 7, End: 12, Score: 0.8},
		{Word: "fatigue", Entity: "Sign_symptom", Start: 17, End: 24, Score: 0.7},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(got))
	}
	want := []string{"fever", "cough", "fatigue"}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("position %d: expected %q, got %q", i, w, got[i].Word)
		}
	}
}

func TestReconstruct_ThreeWayMerge(t *testing.T) {
	text := "echocardiogram scheduled"
	fragments := []Entity{
		{Word: "echo", Entity: "Diagnostic_procedure", Start: 0, End: 4, Score: 0.9},
		{Word: "##cardio", Entity: "Diagnostic_procedure", Start: 4, End: 10, Score: 0.8},
		{Word: "##gram", Entity: "Diagnostic_procedure", Start: 10, End: 14, Score: 0.7},
	}

	got := Reconstruct(fragments, text)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged entity, got %d", len(got))
	}
	if got[0].Word != "echocardiogram" {
		t.Errorf("expected 'echocardiogram', got %q", got[0].Word)
	}
	if got[0].Score != 0.9 {
		t.Errorf("expected first fragment's score, got %v", got[0].Score)
	}
}

func TestEntity_LabelFallback(t *testing.T) {
	e := Entity{Entity: "DISEASE", EntityGroup: "ignored"}
	if e.Label() != "DISEASE" {
		t.Errorf("expected Entity preferred, got %q", e.Label())
	}
	e = Entity{EntityGroup: "Sign_symptom"}
	if e.Label() != "Sign_symptom" {
		t.Errorf("expected EntityGroup fallback, got %q", e.Label())
	}
	e = Entity{}
	if e.Label() != "" {
		t.Errorf("expected empty label, got %q", e.Label())
	}
}
