package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddKeepsStartTimeOrder(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Add(&Segment{ID: "b", StartTime: 5, EndTime: 6}))
	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 1, EndTime: 2}))
	require.NoError(t, st.Add(&Segment{ID: "c", StartTime: 8, EndTime: 9}))

	var ids []string
	for _, seg := range st.All() {
		ids = append(ids, seg.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestAddRejectsInvalid(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 1, EndTime: 2}))

	err := st.Add(&Segment{ID: "a", StartTime: 3, EndTime: 4})
	assert.ErrorIs(t, err, ErrDuplicateID)

	err = st.Add(&Segment{ID: "b", StartTime: 4, EndTime: 4})
	assert.ErrorIs(t, err, ErrInverted)
	assert.Equal(t, 1, st.Len())
}

func TestFindReturnsIntersecting(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 0, EndTime: 2}))
	require.NoError(t, st.Add(&Segment{ID: "b", StartTime: 3, EndTime: 7}))
	require.NoError(t, st.Add(&Segment{ID: "c", StartTime: 10, EndTime: 12}))

	found := st.Find(1, 5)
	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0].ID)
	assert.Equal(t, "b", found[1].ID)

	// Touching at a single point is not an intersection.
	assert.Empty(t, st.Find(2, 3))
}

func TestUpdateTimesResorts(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 1, EndTime: 2}))
	require.NoError(t, st.Add(&Segment{ID: "b", StartTime: 5, EndTime: 6}))

	require.NoError(t, st.UpdateTimes("a", 7, 8))
	all := st.All()
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
}

func TestUpdateTimesValidation(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 1, EndTime: 2}))

	assert.ErrorIs(t, st.UpdateTimes("missing", 1, 2), ErrNotFound)
	assert.ErrorIs(t, st.UpdateTimes("a", 3, 3), ErrInverted)

	// A rejected update leaves the segment untouched.
	seg, _ := st.Get("a")
	assert.Equal(t, 1.0, seg.StartTime)
	assert.Equal(t, 2.0, seg.EndTime)
}

func TestRemove(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 1, EndTime: 2}))

	seg, ok := st.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", seg.ID)
	assert.Equal(t, 0, st.Len())

	_, ok = st.Remove("a")
	assert.False(t, ok)
}

func TestCallbacks(t *testing.T) {
	st := NewStore()

	var added, updated, removed []string
	st.OnAdd(func(s *Segment) { added = append(added, s.ID) })
	st.OnUpdate(func(s *Segment) { updated = append(updated, s.ID) })
	st.OnRemove(func(s *Segment) { removed = append(removed, s.ID) })

	require.NoError(t, st.Add(&Segment{ID: "a", StartTime: 1, EndTime: 2}))
	require.NoError(t, st.UpdateTimes("a", 1.5, 2.5))
	st.Remove("a")

	assert.Equal(t, []string{"a"}, added)
	assert.Equal(t, []string{"a"}, updated)
	assert.Equal(t, []string{"a"}, removed)
}
