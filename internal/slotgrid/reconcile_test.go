package slotgrid

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/courtbook/internal/domain"
)

func persistedSlot(id int64, day domain.Weekday, start, end string, booked bool) domain.CourtSlot {
	return domain.CourtSlot{
		ID:        id,
		CourtID:   1,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		IsBooked:  booked,
	}
}

func key(day domain.Weekday, start, end string) Key {
	return Key{Day: day, StartTime: start, EndTime: end}
}

// fakeSlotStore applies plans the way the slot repository does.
type fakeSlotStore struct {
	nextID int64
	rows   map[int64]domain.CourtSlot
}

func newFakeSlotStore(slots ...domain.CourtSlot) *fakeSlotStore {
	s := &fakeSlotStore{nextID: 1000, rows: map[int64]domain.CourtSlot{}}
	for _, sl := range slots {
		s.rows[sl.ID] = sl
	}
	return s
}

func (s *fakeSlotStore) list() []domain.CourtSlot {
	out := make([]domain.CourtSlot, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeSlotStore) apply(p Plan) {
	for _, id := range p.ToDelete {
		delete(s.rows, id)
	}
	for _, sl := range p.ToInsert {
		s.nextID++
		s.rows[s.nextID] = domain.CourtSlot{
			ID:        s.nextID,
			CourtID:   1,
			DayOfWeek: sl.Day,
			StartTime: sl.StartTime,
			EndTime:   sl.EndTime,
		}
	}
}

func (s *fakeSlotStore) keys() map[Key]int {
	out := map[Key]int{}
	for _, r := range s.rows {
		out[KeyOf(r)]++
	}
	return out
}

func selectedKeys(m EditModel) map[Key]int {
	out := map[Key]int{}
	for _, s := range m.Selected() {
		out[s.Key()]++
	}
	return out
}

func TestBuildEditModelStates(t *testing.T) {
	m := BuildEditModel([]domain.CourtSlot{
		persistedSlot(1, domain.Monday, "09:00", "10:00", false),
		persistedSlot(2, domain.Monday, "10:00", "11:00", true),
	})

	e, ok := m.Entry(key(domain.Monday, "09:00", "10:00"))
	require.True(t, ok)
	assert.Equal(t, ExistingSelected, e.State())
	assert.Equal(t, domain.Morning, e.Slot.Period)
	assert.False(t, e.Locked())

	e, _ = m.Entry(key(domain.Monday, "10:00", "11:00"))
	assert.True(t, e.Locked())

	e, _ = m.Entry(key(domain.Tuesday, "09:00", "10:00"))
	assert.Equal(t, Unselected, e.State())

	m = m.Toggle(key(domain.Monday, "09:00", "10:00")).Toggle(key(domain.Tuesday, "09:00", "10:00"))

	e, _ = m.Entry(key(domain.Monday, "09:00", "10:00"))
	assert.Equal(t, ExistingDeselected, e.State())
	e, _ = m.Entry(key(domain.Tuesday, "09:00", "10:00"))
	assert.Equal(t, NewSelected, e.State())
}

func TestToggleDoesNotModifyReceiver(t *testing.T) {
	base := BuildEditModel(nil)
	k := key(domain.Sunday, "22:00", "23:00")

	toggled := base.Toggle(k)

	e, _ := base.Entry(k)
	assert.False(t, e.Selected)
	e, _ = toggled.Entry(k)
	assert.True(t, e.Selected)

	assert.Equal(t, base, base.Toggle(key(domain.Sunday, "22:30", "23:30")))
}

func TestEditModelIdempotentBaseline(t *testing.T) {
	persisted := []domain.CourtSlot{
		persistedSlot(1, domain.Monday, "06:00", "07:00", false),
		persistedSlot(2, domain.Wednesday, "23:00", "00:00", true),
		persistedSlot(3, domain.Friday, "18:00", "19:00", false),
	}

	first := BuildEditModel(persisted)
	second := BuildEditModel(persisted)
	assert.Equal(t, first, second)

	cleared := second.SelectAll().DeselectAll()

	assert.Empty(t, cleared.Selected())
	for _, e := range cleared.Entries() {
		assert.False(t, e.Selected)
	}
	assert.Equal(t, first.DeselectAll(), cleared)
}

func TestSelectAllSelectsWholeGrid(t *testing.T) {
	assert.Len(t, BuildEditModel(nil).SelectAll().Selected(), len(domain.Week)*SlotsPerDay)
}

func TestDiffRoundTrip(t *testing.T) {
	persisted := []domain.CourtSlot{
		persistedSlot(1, domain.Monday, "06:00", "07:00", false),
		persistedSlot(2, domain.Monday, "07:00", "08:00", true),
		persistedSlot(3, domain.Tuesday, "12:00", "13:00", false),
		persistedSlot(4, domain.Sunday, "05:00", "06:00", false),
	}

	tests := []struct {
		name   string
		keys   []Key
		insert int
		delete int
	}{
		{
			name: "no change",
			keys: []Key{
				key(domain.Monday, "06:00", "07:00"),
				key(domain.Monday, "07:00", "08:00"),
				key(domain.Tuesday, "12:00", "13:00"),
				key(domain.Sunday, "05:00", "06:00"),
			},
		},
		{
			name: "add and remove",
			keys: []Key{
				key(domain.Monday, "07:00", "08:00"),
				key(domain.Tuesday, "12:00", "13:00"),
				key(domain.Thursday, "20:00", "21:00"),
				key(domain.Saturday, "00:00", "01:00"),
			},
			insert: 2,
			delete: 2,
		},
		{
			name:   "keep only booked",
			keys:   []Key{key(domain.Monday, "07:00", "08:00")},
			delete: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, unknown := BuildEditModel(persisted).WithSelection(tt.keys)
			require.Empty(t, unknown)

			plan, err := m.Diff()
			require.NoError(t, err)
			assert.Len(t, plan.ToInsert, tt.insert)
			assert.Len(t, plan.ToDelete, tt.delete)
			assert.NotContains(t, plan.ToDelete, int64(2))

			store := newFakeSlotStore(persisted...)
			store.apply(plan)

			assert.Equal(t, selectedKeys(m), store.keys())

			for _, r := range store.list() {
				if KeyOf(r) == key(domain.Monday, "07:00", "08:00") {
					assert.Equal(t, int64(2), r.ID)
					assert.True(t, r.IsBooked)
				}
			}
		})
	}
}

func TestDiffRefusesDeselectingBookedSlot(t *testing.T) {
	m := BuildEditModel([]domain.CourtSlot{
		persistedSlot(1, domain.Monday, "06:00", "07:00", true),
		persistedSlot(2, domain.Monday, "08:00", "09:00", false),
	}).DeselectAll()

	plan, err := m.Diff()

	var bookedErr *BookedSlotsDeselectedError
	require.ErrorAs(t, err, &bookedErr)
	assert.Equal(t, []Key{key(domain.Monday, "06:00", "07:00")}, bookedErr.Keys)
	assert.True(t, plan.Empty())
}

func TestDiffKeepsOrphansAndDropsDuplicates(t *testing.T) {
	persisted := []domain.CourtSlot{
		persistedSlot(1, domain.Monday, "09:00", "12:00", false),
		persistedSlot(2, domain.Monday, "14:00", "15:00", false),
		persistedSlot(3, domain.Monday, "14:00", "15:00", true),
		persistedSlot(4, domain.Monday, "14:00", "15:00", false),
	}

	m := BuildEditModel(persisted)
	require.Len(t, m.Orphans(), 1)

	e, _ := m.Entry(key(domain.Monday, "14:00", "15:00"))
	require.NotNil(t, e.Existing)
	assert.Equal(t, int64(3), e.Existing.ID)

	plan, err := m.Diff()
	require.NoError(t, err)
	assert.Empty(t, plan.ToInsert)
	assert.ElementsMatch(t, []int64{2, 4}, plan.ToDelete)
}

func TestWithSelectionReportsUnknownKeys(t *testing.T) {
	_, unknown := BuildEditModel(nil).WithSelection([]Key{
		key(domain.Monday, "06:00", "07:00"),
		key(domain.Monday, "06:30", "07:30"),
		key("Funday", "06:00", "07:00"),
	})

	assert.Len(t, unknown, 2)
}

func TestReplacePlan(t *testing.T) {
	persisted := []domain.CourtSlot{
		persistedSlot(1, domain.Monday, "06:00", "07:00", false),
		persistedSlot(2, domain.Monday, "09:00", "12:00", false),
	}

	m := BuildEditModel(persisted).Toggle(key(domain.Tuesday, "13:00", "14:00"))
	plan := m.ReplacePlan()

	assert.ElementsMatch(t, []int64{1, 2}, plan.ToDelete)
	require.Len(t, plan.ToInsert, 3)
	assert.False(t, m.HasBooked())

	store := newFakeSlotStore(persisted...)
	store.apply(plan)

	got := store.keys()
	assert.Equal(t, 1, got[key(domain.Monday, "06:00", "07:00")])
	assert.Equal(t, 1, got[key(domain.Tuesday, "13:00", "14:00")])
	assert.Equal(t, 1, got[key(domain.Monday, "09:00", "12:00")])
	for _, r := range store.list() {
		assert.Greater(t, r.ID, int64(1000))
	}
}

func TestHasBooked(t *testing.T) {
	assert.True(t, BuildEditModel([]domain.CourtSlot{
		persistedSlot(1, domain.Monday, "09:00", "12:00", true),
	}).HasBooked())
}
