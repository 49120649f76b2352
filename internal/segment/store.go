package segment

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNotFound    = errors.New("segment not found")
	ErrDuplicateID = errors.New("segment id already exists")
	ErrInverted    = errors.New("segment start must be before end")
)

// Segment is a named, independently editable time interval on the audio
// timeline. Times are seconds. StartTime < EndTime always holds for a
// segment inside a Store; UpdateTimes rejects any mutation that would
// break it.
type Segment struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Editable  bool    `json:"editable"`
	Focused   bool    `json:"focused,omitempty"`
	Color     string  `json:"color,omitempty"`
	LabelText string  `json:"labelText,omitempty"`
}

// Duration returns the segment length in seconds.
func (s *Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Overlaps reports whether the segment intersects [start, end].
func (s *Segment) Overlaps(start, end float64) bool {
	return s.StartTime < end && s.EndTime > start
}

// Store is an ordered, time-indexed segment collection. It is the
// authoritative owner of Segment values: callers mutate segments only
// through the store so that ordering and mutation callbacks stay
// consistent.
//
// The store is not synchronized. All access happens on the single
// event-processing goroutine of the owning view; multi-client state on
// the server wraps it in its own lock.
type Store struct {
	ordered []*Segment // sorted by StartTime
	byID    map[string]*Segment

	onAdd    []func(*Segment)
	onRemove []func(*Segment)
	onUpdate []func(*Segment)
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*Segment)}
}

// OnAdd registers a callback invoked synchronously after a segment is added.
func (st *Store) OnAdd(fn func(*Segment)) { st.onAdd = append(st.onAdd, fn) }

// OnRemove registers a callback invoked synchronously after a segment is removed.
func (st *Store) OnRemove(fn func(*Segment)) { st.onRemove = append(st.onRemove, fn) }

// OnUpdate registers a callback invoked synchronously after a segment's
// boundaries change.
func (st *Store) OnUpdate(fn func(*Segment)) { st.onUpdate = append(st.onUpdate, fn) }

// Add inserts a segment in start-time order.
func (st *Store) Add(seg *Segment) error {
	if seg.StartTime >= seg.EndTime {
		return fmt.Errorf("%w: start=%v end=%v", ErrInverted, seg.StartTime, seg.EndTime)
	}
	if _, ok := st.byID[seg.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, seg.ID)
	}

	st.byID[seg.ID] = seg
	idx := sort.Search(len(st.ordered), func(i int) bool {
		return st.ordered[i].StartTime > seg.StartTime
	})
	st.ordered = append(st.ordered, nil)
	copy(st.ordered[idx+1:], st.ordered[idx:])
	st.ordered[idx] = seg

	for _, fn := range st.onAdd {
		fn(seg)
	}
	return nil
}

// Remove deletes a segment by id. Removing an unknown id is a no-op.
func (st *Store) Remove(id string) (*Segment, bool) {
	seg, ok := st.byID[id]
	if !ok {
		return nil, false
	}

	delete(st.byID, id)
	for i, s := range st.ordered {
		if s.ID == id {
			st.ordered = append(st.ordered[:i], st.ordered[i+1:]...)
			break
		}
	}

	for _, fn := range st.onRemove {
		fn(seg)
	}
	return seg, true
}

// Get returns the segment with the given id.
func (st *Store) Get(id string) (*Segment, bool) {
	seg, ok := st.byID[id]
	return seg, ok
}

// Find returns the segments intersecting [startTime, endTime], ordered by
// start time.
func (st *Store) Find(startTime, endTime float64) []*Segment {
	var result []*Segment
	for _, seg := range st.ordered {
		if seg.StartTime >= endTime {
			break
		}
		if seg.Overlaps(startTime, endTime) {
			result = append(result, seg)
		}
	}
	return result
}

// UpdateTimes moves a segment's boundaries and re-sorts the collection.
// The inversion invariant is enforced here as the last line of defense;
// interactive callers clamp before committing.
func (st *Store) UpdateTimes(id string, startTime, endTime float64) error {
	seg, ok := st.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if startTime >= endTime {
		return fmt.Errorf("%w: start=%v end=%v", ErrInverted, startTime, endTime)
	}

	seg.StartTime = startTime
	seg.EndTime = endTime
	sort.SliceStable(st.ordered, func(i, j int) bool {
		return st.ordered[i].StartTime < st.ordered[j].StartTime
	})

	for _, fn := range st.onUpdate {
		fn(seg)
	}
	return nil
}

// All returns every segment in start-time order.
func (st *Store) All() []*Segment {
	result := make([]*Segment, len(st.ordered))
	copy(result, st.ordered)
	return result
}

// Len returns the number of segments.
func (st *Store) Len() int {
	return len(st.ordered)
}
