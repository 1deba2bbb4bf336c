package slotgrid

import (
	"fmt"
	"strings"

	"github.com/kirinyoku/courtbook/internal/domain"
)

type State int

const (
	Unselected State = iota
	NewSelected
	ExistingSelected
	ExistingDeselected
)

func (s State) String() string {
	switch s {
	case NewSelected:
		return "new_selected"
	case ExistingSelected:
		return "existing_selected"
	case ExistingDeselected:
		return "existing_deselected"
	default:
		return "unselected"
	}
}

// Entry is one canonical slot in an edit session.
type Entry struct {
	Slot     Slot
	Existing *domain.CourtSlot
	Selected bool
}

func (e Entry) State() State {
	switch {
	case e.Existing != nil && e.Selected:
		return ExistingSelected
	case e.Existing != nil:
		return ExistingDeselected
	case e.Selected:
		return NewSelected
	default:
		return Unselected
	}
}

// Locked reports whether the entry is backed by a booked slot.
func (e Entry) Locked() bool {
	return e.Existing != nil && e.Existing.IsBooked
}

// EditModel is the selection state of one court's week. Operations return
// a new model and never modify the receiver.
type EditModel struct {
	entries    []Entry
	orphans    []domain.CourtSlot
	duplicates []domain.CourtSlot
	persisted  []domain.CourtSlot
}

// BuildEditModel marks every persisted slot that matches a canonical window
// as existing and selected. Persisted slots outside the grid are kept as
// orphans. When a window is stored twice, the booked row (or the first) is
// tracked and the rest are duplicates.
func BuildEditModel(persisted []domain.CourtSlot) EditModel {
	m := EditModel{
		entries:   make([]Entry, len(grid)),
		persisted: append([]domain.CourtSlot(nil), persisted...),
	}

	for i, s := range grid {
		m.entries[i] = Entry{Slot: s}
	}

	for _, p := range persisted {
		i, ok := gridIndex[KeyOf(p)]
		if !ok {
			m.orphans = append(m.orphans, p)
			continue
		}

		e := &m.entries[i]
		cp := p
		switch {
		case e.Existing == nil:
			e.Existing = &cp
			e.Selected = true
		case p.IsBooked && !e.Existing.IsBooked:
			m.duplicates = append(m.duplicates, *e.Existing)
			e.Existing = &cp
		default:
			m.duplicates = append(m.duplicates, p)
		}
	}

	return m
}

func (m EditModel) clone() EditModel {
	cp := m
	cp.entries = make([]Entry, len(m.entries))
	copy(cp.entries, m.entries)
	return cp
}

// Toggle flips the selection of k. Unknown keys leave the model unchanged.
func (m EditModel) Toggle(k Key) EditModel {
	i, ok := gridIndex[k]
	if !ok || len(m.entries) == 0 {
		return m
	}
	cp := m.clone()
	cp.entries[i].Selected = !cp.entries[i].Selected
	return cp
}

func (m EditModel) SelectAll() EditModel {
	return m.setAll(true)
}

func (m EditModel) DeselectAll() EditModel {
	return m.setAll(false)
}

func (m EditModel) setAll(selected bool) EditModel {
	cp := m.clone()
	for i := range cp.entries {
		cp.entries[i].Selected = selected
	}
	return cp
}

// WithSelection returns a model where exactly keys are selected. Keys that
// match no canonical window are returned as unknown.
func (m EditModel) WithSelection(keys []Key) (EditModel, []Key) {
	cp := m.setAll(false)

	var unknown []Key
	for _, k := range keys {
		i, ok := gridIndex[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		cp.entries[i].Selected = true
	}

	return cp, unknown
}

func (m EditModel) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m EditModel) Entry(k Key) (Entry, bool) {
	i, ok := gridIndex[k]
	if !ok || len(m.entries) == 0 {
		return Entry{}, false
	}
	return m.entries[i], true
}

func (m EditModel) Orphans() []domain.CourtSlot {
	return append([]domain.CourtSlot(nil), m.orphans...)
}

func (m EditModel) Selected() []Slot {
	var out []Slot
	for _, e := range m.entries {
		if e.Selected {
			out = append(out, e.Slot)
		}
	}
	return out
}

func (m EditModel) HasBooked() bool {
	for _, p := range m.persisted {
		if p.IsBooked {
			return true
		}
	}
	return false
}

// Plan is the write-set that brings a court's stored slots to a selection.
type Plan struct {
	ToInsert []Slot
	ToDelete []int64
}

func (p Plan) Empty() bool {
	return len(p.ToInsert) == 0 && len(p.ToDelete) == 0
}

type BookedSlotsDeselectedError struct {
	Keys []Key
}

func (e *BookedSlotsDeselectedError) Error() string {
	parts := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		parts[i] = k.String()
	}
	return fmt.Sprintf("booked slots cannot be removed: %s", strings.Join(parts, ", "))
}

// Diff computes the minimal write-set for the model. Selected slots that are
// already stored keep their row, and orphans are left alone. Deselecting a
// booked slot fails with *BookedSlotsDeselectedError.
func (m EditModel) Diff() (Plan, error) {
	var (
		plan   Plan
		booked []Key
	)

	for _, e := range m.entries {
		switch e.State() {
		case NewSelected:
			plan.ToInsert = append(plan.ToInsert, e.Slot)
		case ExistingDeselected:
			if e.Existing.IsBooked {
				booked = append(booked, e.Slot.Key())
				continue
			}
			plan.ToDelete = append(plan.ToDelete, e.Existing.ID)
		}
	}

	if len(booked) > 0 {
		return Plan{}, &BookedSlotsDeselectedError{Keys: booked}
	}

	for _, d := range m.duplicates {
		if !d.IsBooked {
			plan.ToDelete = append(plan.ToDelete, d.ID)
		}
	}

	return plan, nil
}

// ReplacePlan deletes every stored slot and reinserts the selection plus
// orphans. Booked slots lose their row, so callers must refuse it while
// HasBooked is true.
func (m EditModel) ReplacePlan() Plan {
	var plan Plan

	for _, p := range m.persisted {
		plan.ToDelete = append(plan.ToDelete, p.ID)
	}

	plan.ToInsert = m.Selected()

	for _, o := range m.orphans {
		period, err := PeriodOf(o.StartTime)
		if err != nil {
			period = domain.Morning
		}
		plan.ToInsert = append(plan.ToInsert, Slot{
			Day:       o.DayOfWeek,
			Period:    period,
			StartTime: o.StartTime,
			EndTime:   o.EndTime,
		})
	}

	return plan
}
