package registry

import (
	"fmt"
	"strings"
)

// Registry holds the process-wide set of condition definitions and allergy
// options. It is validated at construction time and immutable afterwards.
type Registry struct {
	conditions []ConditionDef
	allergies  []AllergyOption
	byID       map[string]int
	allergyIdx map[string]int
}

// New validates and builds a Registry. Condition IDs must be unique, and lab
// field keys must be unique across the whole registry so that a key resolves
// to exactly one (condition, field) pair.
func New(conditions []ConditionDef, allergies []AllergyOption) (*Registry, error) {
	r := &Registry{
		conditions: conditions,
		allergies:  allergies,
		byID:       make(map[string]int, len(conditions)),
		allergyIdx: make(map[string]int, len(allergies)),
	}

	labOwner := make(map[string]string)
	for i, c := range conditions {
		if c.ID == "" {
			return nil, fmt.Errorf("condition at index %d has empty id", i)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate condition id %q", c.ID)
		}
		r.byID[c.ID] = i
		for _, f := range c.LabFields {
			if f.Key == "" {
				return nil, fmt.Errorf("condition %q has lab field with empty key", c.ID)
			}
			if owner, dup := labOwner[f.Key]; dup {
				return nil, fmt.Errorf("lab field key %q declared by both %q and %q", f.Key, owner, c.ID)
			}
			labOwner[f.Key] = c.ID
		}
	}

	for i, a := range allergies {
		if a.ID == "" {
			return nil, fmt.Errorf("allergy option at index %d has empty id", i)
		}
		if _, dup := r.allergyIdx[a.ID]; dup {
			return nil, fmt.Errorf("duplicate allergy id %q", a.ID)
		}
		r.allergyIdx[a.ID] = i
	}

	return r, nil
}

// Conditions returns all condition definitions in registry order.
func (r *Registry) Conditions() []ConditionDef {
	out := make([]ConditionDef, len(r.conditions))
	copy(out, r.conditions)
	return out
}

// ConditionByID looks up a condition definition.
func (r *Registry) ConditionByID(id string) (ConditionDef, bool) {
	i, ok := r.byID[id]
	if !ok {
		return ConditionDef{}, false
	}
	return r.conditions[i], true
}

// LabFieldByKey resolves a lab field key by scanning conditions in registry
// order and returning the first matching field definition.
func (r *Registry) LabFieldByKey(key string) (LabFieldDef, bool) {
	for _, c := range r.conditions {
		for _, f := range c.LabFields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return LabFieldDef{}, false
}

// AllergyOptions returns all allergy options in registry order.
func (r *Registry) AllergyOptions() []AllergyOption {
	out := make([]AllergyOption, len(r.allergies))
	copy(out, r.allergies)
	return out
}

// AllergyByID looks up an allergy option.
func (r *Registry) AllergyByID(id string) (AllergyOption, bool) {
	i, ok := r.allergyIdx[id]
	if !ok {
		return AllergyOption{}, false
	}
	return r.allergies[i], true
}

// Visible returns the conditions applicable to the given demographics. A
// condition gated on gender or age is included when that attribute is
// unknown: missing demographic data must never hide a condition.
func (r *Registry) Visible(demo Demographics) []ConditionDef {
	var out []ConditionDef
	for _, c := range r.conditions {
		if len(c.GenderFilter) > 0 && demo.Gender != "" {
			if !containsGender(c.GenderFilter, demo.Gender) {
				continue
			}
		}
		if c.MinAge > 0 && demo.Age > 0 && demo.Age < c.MinAge {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Search filters pool by a case-insensitive substring match over label,
// short label and description. A blank query returns the pool unchanged.
func Search(query string, pool []ConditionDef) []ConditionDef {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return pool
	}
	var out []ConditionDef
	for _, c := range pool {
		if strings.Contains(strings.ToLower(c.Label), q) ||
			strings.Contains(strings.ToLower(c.ShortLabel), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out
}

func containsGender(filter []Gender, g Gender) bool {
	for _, f := range filter {
		if f == g {
			return true
		}
	}
	return false
}
