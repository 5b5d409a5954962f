package profile

import (
	"time"
)

// ConditionStatus records whether a condition applies to the user, their
// family, or both. "Not selected" is represented by absence, never by an
// explicit value.
type ConditionStatus string

const (
	StatusActive        ConditionStatus = "active"
	StatusFamilyHistory ConditionStatus = "family_history"
	StatusBoth          ConditionStatus = "both"
)

// Valid reports whether s is one of the recognized statuses.
func (s ConditionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusFamilyHistory, StatusBoth:
		return true
	}
	return false
}

// DietPreference is the user's dietary pattern.
type DietPreference string

const (
	DietVeg         DietPreference = "veg"
	DietNonVeg      DietPreference = "nonveg"
	DietEggetarian  DietPreference = "eggetarian"
	DietVegan       DietPreference = "vegan"
	DietPescatarian DietPreference = "pescatarian"
)

// Valid reports whether p is one of the recognized diet preferences.
func (p DietPreference) Valid() bool {
	switch p {
	case DietVeg, DietNonVeg, DietEggetarian, DietVegan, DietPescatarian:
		return true
	}
	return false
}

// MaxNotesLen caps the free-text notes field.
const MaxNotesLen = 500

// HealthCondition is one selected condition in a synthesized profile.
type HealthCondition struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Status ConditionStatus `json:"status"`
}

// LabValue is one lab measurement that passed the "set" test at synthesis
// time (finite, > 0), with label and unit resolved from the registry.
type LabValue struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	TestedAt string  `json:"tested_at"`
}

// HealthProfile is the synthesized, immutable output of the wizard. Updates
// replace the whole record; Version increments on every store so in-flight
// verdict requests can detect a profile that changed underneath them.
type HealthProfile struct {
	UserID         string            `json:"user_id"`
	Conditions     []HealthCondition `json:"conditions"`
	LabValues      []LabValue        `json:"lab_values"`
	FreeTextNotes  string            `json:"free_text_notes"`
	DietPreference *DietPreference   `json:"diet_preference,omitempty"`
	Version        int               `json:"version"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ConditionIDs returns the ids of the profile's conditions in order.
func (p *HealthProfile) ConditionIDs() []string {
	ids := make([]string, len(p.Conditions))
	for i, c := range p.Conditions {
		ids[i] = c.ID
	}
	return ids
}
