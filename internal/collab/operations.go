package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/soundmark/soundmark/backend-go/internal/segment"
	"github.com/soundmark/soundmark/backend-go/internal/waveform"
)

// MinSegmentDuration is the server-side floor on segment length. Clients
// clamp during a drag; this is the last line of defense against a stale
// or misbehaving client committing a degenerate segment.
const MinSegmentDuration = 0.2

// DocumentState holds the authoritative document for one room. Segments
// live in a Store so that ordering and boundary invariants are enforced
// on every mutation; the document's segment slice is synced back from
// the store before each snapshot.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *waveform.Document
	store     *segment.Store
	serverSeq int64
	opLog     []Operation
	dirty     bool
}

// NewDocumentState loads a document into a fresh state. The document is
// validated; a corrupt snapshot is rejected rather than served.
func NewDocumentState(doc *waveform.Document) (*DocumentState, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	store, err := doc.BuildStore()
	if err != nil {
		return nil, err
	}
	return &DocumentState{doc: doc, store: store}, nil
}

// Snapshot returns the current document serialized to JSON, with the
// store's segments synced in.
func (ds *DocumentState) Snapshot() (json.RawMessage, int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.doc.SyncSegments(ds.store)
	data, err := json.Marshal(ds.doc)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal document: %w", err)
	}
	return data, ds.serverSeq, nil
}

// Dirty reports whether the document changed since the last ClearDirty.
func (ds *DocumentState) Dirty() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.dirty
}

func (ds *DocumentState) ClearDirty() {
	ds.mu.Lock()
	ds.dirty = false
	ds.mu.Unlock()
}

// ApplyOperation applies an operation and returns the new server
// sequence. A failed operation leaves the document untouched.
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.opLog = append(ds.opLog, op)
	ds.dirty = true
	ds.doc.Project.Version++
	ds.doc.Project.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return ds.serverSeq, nil
}

func (ds *DocumentState) applyLocked(op Operation) error {
	switch op.Type {
	case OpSegmentCreate:
		return ds.applyCreate(op)
	case OpSegmentMove:
		return ds.applyMove(op)
	case OpSegmentDelete:
		return ds.applyDelete(op)
	case OpSegmentRename:
		return ds.applyRename(op)
	case OpSegmentStyle:
		return ds.applyStyle(op)
	case OpProjectRename:
		return ds.applyProjectRename(op)
	case OpViewUpdate:
		return ds.applyViewUpdate(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (ds *DocumentState) applyCreate(op Operation) error {
	var seg segment.Segment
	if err := json.Unmarshal(op.Segment, &seg); err != nil {
		return fmt.Errorf("invalid segment: %w", err)
	}
	if seg.Duration() < MinSegmentDuration {
		return fmt.Errorf("segment too short: %v", seg.Duration())
	}
	return ds.store.Add(&seg)
}

func (ds *DocumentState) applyMove(op Operation) error {
	seg, ok := ds.store.Get(op.SegmentID)
	if !ok {
		return fmt.Errorf("segment not found: %s", op.SegmentID)
	}

	start := seg.StartTime
	end := seg.EndTime
	if op.StartTime != nil {
		start = *op.StartTime
	}
	if op.EndTime != nil {
		end = *op.EndTime
	}
	if start < 0 {
		return fmt.Errorf("segment start must not be negative: %v", start)
	}
	if end-start < MinSegmentDuration {
		return fmt.Errorf("segment too short: %v", end-start)
	}

	return ds.store.UpdateTimes(op.SegmentID, start, end)
}

func (ds *DocumentState) applyDelete(op Operation) error {
	if _, ok := ds.store.Remove(op.SegmentID); !ok {
		return fmt.Errorf("segment not found: %s", op.SegmentID)
	}
	return nil
}

func (ds *DocumentState) applyRename(op Operation) error {
	seg, ok := ds.store.Get(op.SegmentID)
	if !ok {
		return fmt.Errorf("segment not found: %s", op.SegmentID)
	}
	if op.LabelText == nil {
		return fmt.Errorf("rename without labelText")
	}
	seg.LabelText = *op.LabelText
	return nil
}

func (ds *DocumentState) applyStyle(op Operation) error {
	seg, ok := ds.store.Get(op.SegmentID)
	if !ok {
		return fmt.Errorf("segment not found: %s", op.SegmentID)
	}
	if op.Color != nil {
		seg.Color = *op.Color
	}
	return nil
}

func (ds *DocumentState) applyProjectRename(op Operation) error {
	if op.Name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	ds.doc.Project.Name = op.Name
	return nil
}

func (ds *DocumentState) applyViewUpdate(op Operation) error {
	var changes map[string]float64
	if err := json.Unmarshal(op.Changes, &changes); err != nil {
		return fmt.Errorf("invalid view changes: %w", err)
	}

	if v, ok := changes["scale"]; ok {
		if v <= 0 {
			return fmt.Errorf("scale must be positive: %v", v)
		}
		ds.doc.View.Scale = v
	}
	if v, ok := changes["frameOffset"]; ok {
		if v < 0 {
			v = 0
		}
		ds.doc.View.FrameOffset = int(v)
	}
	if v, ok := changes["height"]; ok && v > 0 {
		ds.doc.View.Height = int(v)
	}
	return nil
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
