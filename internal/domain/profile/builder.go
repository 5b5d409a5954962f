package profile

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/fridgenius/fridgenius/internal/domain/registry"
)

// Facet is one of the two independent boolean dimensions folded into a
// ConditionStatus: whether the condition affects the user ("me") and whether
// it runs in their family.
type Facet string

const (
	FacetMe     Facet = "me"
	FacetFamily Facet = "family"
)

type labEntry struct {
	value    string
	testedAt string
}

// Builder accumulates wizard state and synthesizes a HealthProfile. It is a
// plain in-memory reducer: every mutation is applied fully before returning,
// and a single builder belongs to exactly one wizard session. It is not safe
// for concurrent use.
type Builder struct {
	reg    *registry.Registry
	logger zerolog.Logger

	order    []string // selection insertion order, preserved into the profile
	statuses map[string]ConditionStatus

	labOrder []string
	labs     map[string]labEntry

	allergyOrder []string
	allergies    map[string]bool

	expanded string
	notes    string
	diet     *DietPreference

	now func() time.Time
}

// NewBuilder creates an empty Builder over the given registry.
func NewBuilder(reg *registry.Registry) *Builder {
	return &Builder{
		reg:       reg,
		logger:    zerolog.Nop(),
		statuses:  make(map[string]ConditionStatus),
		labs:      make(map[string]labEntry),
		allergies: make(map[string]bool),
		now:       time.Now,
	}
}

// FromProfile reconstructs builder state from a stored profile so the wizard
// can be reopened for editing. Allergies are not reconstructed: they were
// folded into the notes text at synthesis time.
func FromProfile(reg *registry.Registry, p *HealthProfile) *Builder {
	b := NewBuilder(reg)
	if p == nil {
		return b
	}
	for _, c := range p.Conditions {
		b.SetStatus(c.ID, c.Status)
	}
	for _, l := range p.LabValues {
		b.UpdateLabValue(l.Key, strconv.FormatFloat(l.Value, 'f', -1, 64), l.TestedAt)
	}
	// Stored notes are synthesis output and may exceed the input cap once the
	// allergy sentence is appended; reconstruct them verbatim.
	b.notes = p.FreeTextNotes
	if p.DietPreference != nil {
		b.SetDietPreference(*p.DietPreference)
	}
	return b
}

// SetLogger attaches a logger used for non-fatal synthesis skips.
func (b *Builder) SetLogger(l zerolog.Logger) { b.logger = l }

// Status returns the current status for a condition id; ok is false when the
// condition is not selected.
func (b *Builder) Status(id string) (ConditionStatus, bool) {
	s, ok := b.statuses[id]
	return s, ok
}

// SelectedCount returns the number of selected conditions.
func (b *Builder) SelectedCount() int { return len(b.order) }

// ToggleSelect selects an unselected condition as active, or fully deselects
// a selected condition regardless of its status. Deselecting also collapses
// the condition's lab editor if it was expanded.
func (b *Builder) ToggleSelect(id string) {
	if _, ok := b.statuses[id]; ok {
		b.remove(id)
		return
	}
	b.set(id, StatusActive)
}

// TogglePill flips one facet of a condition's status without disturbing the
// other facet. Turning the last remaining facet off removes the selection.
func (b *Builder) TogglePill(id string, facet Facet) {
	current, selected := b.statuses[id]
	if facet == FacetMe {
		switch {
		case !selected:
			b.set(id, StatusActive)
		case current == StatusActive:
			b.remove(id)
		case current == StatusFamilyHistory:
			b.set(id, StatusBoth)
		case current == StatusBoth:
			b.set(id, StatusFamilyHistory)
		}
		return
	}
	switch {
	case !selected:
		b.set(id, StatusFamilyHistory)
	case current == StatusFamilyHistory:
		b.remove(id)
	case current == StatusActive:
		b.set(id, StatusBoth)
	case current == StatusBoth:
		b.set(id, StatusActive)
	}
}

// SetStatus sets a condition's status directly. Used for bulk edits such as
// loading an existing profile.
func (b *Builder) SetStatus(id string, status ConditionStatus) {
	if !status.Valid() {
		return
	}
	b.set(id, status)
}

// ClearStatus removes a condition from the selection.
func (b *Builder) ClearStatus(id string) { b.remove(id) }

func (b *Builder) set(id string, status ConditionStatus) {
	if _, ok := b.statuses[id]; !ok {
		b.order = append(b.order, id)
	}
	b.statuses[id] = status
}

func (b *Builder) remove(id string) {
	if _, ok := b.statuses[id]; !ok {
		return
	}
	delete(b.statuses, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	if b.expanded == id {
		b.expanded = ""
	}
}

// UpdateLabValue upserts a lab entry's raw text. When testedAt is empty the
// existing date is preserved; the first write defaults it to today.
func (b *Builder) UpdateLabValue(key, value, testedAt string) {
	existing, ok := b.labs[key]
	if !ok {
		b.labOrder = append(b.labOrder, key)
	}
	if testedAt == "" {
		testedAt = existing.testedAt
	}
	if testedAt == "" {
		testedAt = b.now().Format("2006-01-02")
	}
	b.labs[key] = labEntry{value: value, testedAt: testedAt}
}

// UpdateLabDate upserts only the tested-at date, preserving any value text.
func (b *Builder) UpdateLabDate(key, testedAt string) {
	existing, ok := b.labs[key]
	if !ok {
		b.labOrder = append(b.labOrder, key)
	}
	b.labs[key] = labEntry{value: existing.value, testedAt: testedAt}
}

// LabValue returns the raw stored text for a lab key.
func (b *Builder) LabValue(key string) (value, testedAt string, ok bool) {
	e, ok := b.labs[key]
	return e.value, e.testedAt, ok
}

// CanEditLabs reports whether the lab editor for a condition is reachable:
// the condition must declare lab fields and be selected as active or both.
// Family-history-only conditions do not solicit lab values.
func (b *Builder) CanEditLabs(id string) bool {
	def, ok := b.reg.ConditionByID(id)
	if !ok || len(def.LabFields) == 0 {
		return false
	}
	s := b.statuses[id]
	return s == StatusActive || s == StatusBoth
}

// Expand opens the inline lab editor for a condition. Returns false when the
// editor is not reachable for that condition.
func (b *Builder) Expand(id string) bool {
	if !b.CanEditLabs(id) {
		return false
	}
	b.expanded = id
	return true
}

// Collapse closes any open lab editor.
func (b *Builder) Collapse() { b.expanded = "" }

// Expanded returns the condition id whose lab editor is open, or "".
func (b *Builder) Expanded() string { return b.expanded }

// ToggleAllergy flips membership of an allergy id.
func (b *Builder) ToggleAllergy(id string) {
	if b.allergies[id] {
		delete(b.allergies, id)
		for i, v := range b.allergyOrder {
			if v == id {
				b.allergyOrder = append(b.allergyOrder[:i], b.allergyOrder[i+1:]...)
				break
			}
		}
		return
	}
	b.allergies[id] = true
	b.allergyOrder = append(b.allergyOrder, id)
}

// HasAllergy reports membership of an allergy id.
func (b *Builder) HasAllergy(id string) bool { return b.allergies[id] }

// SetNotes stores the free-text notes, truncated to MaxNotesLen characters.
func (b *Builder) SetNotes(s string) {
	if utf8.RuneCountInString(s) > MaxNotesLen {
		r := []rune(s)
		s = string(r[:MaxNotesLen])
	}
	b.notes = s
}

// Notes returns the stored free-text notes.
func (b *Builder) Notes() string { return b.notes }

// SetDietPreference sets the diet preference; invalid values are ignored.
func (b *Builder) SetDietPreference(p DietPreference) {
	if !p.Valid() {
		return
	}
	b.diet = &p
}

// ClearDietPreference removes the diet preference.
func (b *Builder) ClearDietPreference() { b.diet = nil }

// Finalize synthesizes the immutable HealthProfile from the current builder
// state. It is a pure function of that state: repeated calls on an unchanged
// builder yield equal profiles, and no builder state is modified.
//
// Lab entries are scanned unconditionally: a parseable positive value whose
// key resolves in the registry is included even when the owning condition is
// deselected or family-history only. The lab editor's reachability rule
// gates input, not synthesis.
func (b *Builder) Finalize() HealthProfile {
	p := HealthProfile{}

	for _, id := range b.order {
		def, ok := b.reg.ConditionByID(id)
		if !ok {
			// Registries evolve between profile edits; a stale id is
			// dropped, never a hard failure.
			b.logger.Warn().Str("condition_id", id).Msg("skipping unknown condition during synthesis")
			continue
		}
		p.Conditions = append(p.Conditions, HealthCondition{
			ID:     id,
			Label:  def.Label,
			Status: b.statuses[id],
		})
	}

	p.FreeTextNotes = b.notesWithAllergies()

	for _, key := range b.labOrder {
		entry := b.labs[key]
		v, err := strconv.ParseFloat(strings.TrimSpace(entry.value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		field, ok := b.reg.LabFieldByKey(key)
		if !ok {
			b.logger.Warn().Str("lab_key", key).Msg("skipping unknown lab field during synthesis")
			continue
		}
		p.LabValues = append(p.LabValues, LabValue{
			Key:      key,
			Label:    field.Label,
			Value:    v,
			Unit:     field.Unit,
			TestedAt: entry.testedAt,
		})
	}

	if b.diet != nil {
		d := *b.diet
		p.DietPreference = &d
	}

	return p
}

// notesWithAllergies appends the allergy sentence to the stored notes,
// exactly once: re-synthesis must not duplicate a sentence already present
// verbatim.
func (b *Builder) notesWithAllergies() string {
	notes := b.notes
	if len(b.allergyOrder) == 0 {
		return notes
	}
	var labels []string
	for _, id := range b.allergyOrder {
		if opt, ok := b.reg.AllergyByID(id); ok {
			labels = append(labels, opt.Label)
		}
	}
	if len(labels) == 0 {
		return notes
	}
	sentence := "Allergic to: " + strings.Join(labels, ", ") + "."
	if strings.Contains(notes, sentence) {
		return notes
	}
	if notes == "" {
		return sentence
	}
	return notes + "\n" + sentence
}
