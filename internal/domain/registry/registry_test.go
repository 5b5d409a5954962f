package registry

import (
	"testing"
)

func TestNew_DuplicateConditionID(t *testing.T) {
	_, err := New([]ConditionDef{
		{ID: "diabetes", Label: "Diabetes"},
		{ID: "diabetes", Label: "Diabetes Again"},
	}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate condition id")
	}
}

func TestNew_DuplicateLabKeyAcrossConditions(t *testing.T) {
	_, err := New([]ConditionDef{
		{ID: "a", Label: "A", LabFields: []LabFieldDef{{Key: "hba1c", Label: "HbA1c"}}},
		{ID: "b", Label: "B", LabFields: []LabFieldDef{{Key: "hba1c", Label: "Other"}}},
	}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate lab field key")
	}
}

func TestNew_EmptyConditionID(t *testing.T) {
	_, err := New([]ConditionDef{{Label: "No ID"}}, nil)
	if err == nil {
		t.Fatal("expected error for empty condition id")
	}
}

func TestNew_DuplicateAllergyID(t *testing.T) {
	_, err := New(nil, []AllergyOption{{ID: "dairy", Label: "Dairy"}, {ID: "dairy", Label: "Milk"}})
	if err == nil {
		t.Fatal("expected error for duplicate allergy id")
	}
}

func TestDefault_Valid(t *testing.T) {
	r := Default()
	if len(r.Conditions()) == 0 {
		t.Fatal("default registry is empty")
	}
	if _, ok := r.ConditionByID(AllergyConditionID); !ok {
		t.Errorf("default registry missing %q", AllergyConditionID)
	}
	if _, ok := r.ConditionByID("diabetes"); !ok {
		t.Error("default registry missing diabetes")
	}
}

func TestConditionByID_NotFound(t *testing.T) {
	r := Default()
	if _, ok := r.ConditionByID("nonexistent"); ok {
		t.Error("expected miss for unknown condition id")
	}
}

func TestLabFieldByKey(t *testing.T) {
	r := Default()
	f, ok := r.LabFieldByKey("hba1c")
	if !ok {
		t.Fatal("expected hba1c to resolve")
	}
	if f.Label != "HbA1c" || f.Unit != "%" {
		t.Errorf("unexpected field: %+v", f)
	}
	if _, ok := r.LabFieldByKey("bogus_key"); ok {
		t.Error("expected miss for unknown lab key")
	}
}

func TestVisible_GenderFilter(t *testing.T) {
	r := Default()

	for _, c := range r.Visible(Demographics{Gender: GenderMale, Age: 30}) {
		if c.ID == "pcos" {
			t.Error("pcos should be hidden for male users")
		}
	}

	found := false
	for _, c := range r.Visible(Demographics{Gender: GenderFemale, Age: 30}) {
		if c.ID == "pcos" {
			found = true
		}
	}
	if !found {
		t.Error("pcos should be visible for female users")
	}
}

func TestVisible_FailOpenForUnknownDemographics(t *testing.T) {
	r := Default()
	// Unknown gender and age: gated conditions must still be included.
	visible := r.Visible(Demographics{})
	if len(visible) != len(r.Conditions()) {
		t.Errorf("expected all %d conditions visible, got %d", len(r.Conditions()), len(visible))
	}
}

func TestVisible_MinAge(t *testing.T) {
	r := Default()
	for _, c := range r.Visible(Demographics{Gender: GenderMale, Age: 10}) {
		if c.ID == "heart_disease" {
			t.Error("heart_disease should be hidden below min age")
		}
	}
}

func TestSearch(t *testing.T) {
	r := Default()
	pool := r.Conditions()

	got := Search("diabet", pool)
	if len(got) == 0 {
		t.Fatal("expected matches for 'diabet'")
	}
	for _, c := range got {
		if c.ID != "diabetes" && c.ID != "prediabetes" {
			t.Errorf("unexpected match %q", c.ID)
		}
	}

	// Matches against description too.
	if len(Search("heartburn", pool)) != 1 {
		t.Error("expected description match for 'heartburn'")
	}

	// Case-insensitive.
	if len(Search("THYROID", pool)) == 0 {
		t.Error("expected case-insensitive match")
	}
}

func TestSearch_BlankQueryReturnsPool(t *testing.T) {
	r := Default()
	pool := r.Conditions()
	if got := Search("   ", pool); len(got) != len(pool) {
		t.Errorf("blank query should return full pool, got %d of %d", len(got), len(pool))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	if got := Search("zzzzz", Default().Conditions()); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
