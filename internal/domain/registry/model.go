package registry

// Category describes how strongly a condition shapes dietary advice.
type Category string

const (
	CategoryHighImpact   Category = "high_impact"
	CategoryMediumImpact Category = "medium_impact"
)

// Gender values used by condition eligibility filters.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// LabFieldDef describes a numeric clinical measurement solicited for a condition.
// Key is unique across the entire registry: lab values are looked up by key
// alone, never by (condition, key).
type LabFieldDef struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Unit        string  `json:"unit"`
	NormalRange string  `json:"normal_range"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	Placeholder string  `json:"placeholder"`
}

// ConditionDef is a single entry of the static condition registry.
type ConditionDef struct {
	ID               string        `json:"id"`
	Label            string        `json:"label"`
	ShortLabel       string        `json:"short_label"`
	Description      string        `json:"description"`
	Category         Category      `json:"category"`
	GenderFilter     []Gender      `json:"gender_filter,omitempty"`
	MinAge           int           `json:"min_age,omitempty"`
	HasFamilyHistory bool          `json:"has_family_history"`
	LabFields        []LabFieldDef `json:"lab_fields"`
}

// AllergyOption is a selectable food allergy, relevant when the designated
// allergy condition is part of the user's selection.
type AllergyOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Demographics carries the user attributes conditions are gated on. Zero
// values mean "unknown"; gated conditions fail open for unknown attributes.
type Demographics struct {
	Gender Gender
	Age    int
}
