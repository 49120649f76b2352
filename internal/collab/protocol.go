package collab

import "encoding/json"

type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// PresencePayload carries a collaborator's live position on the
// timeline: playhead and pointer positions in seconds, plus the segment
// ids they have selected.
type PresencePayload struct {
	Playhead    *float64 `json:"playhead,omitempty"`
	CursorTime  *float64 `json:"cursorTime,omitempty"`
	Selection   []string `json:"selection,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Operation mutation types.
const (
	OpSegmentCreate = "segment.create"
	OpSegmentMove   = "segment.move"
	OpSegmentDelete = "segment.delete"
	OpSegmentRename = "segment.rename"
	OpSegmentStyle  = "segment.style"
	OpProjectRename = "project.rename"
	OpViewUpdate    = "view.update"
)

// Operation represents a single document mutation. The Previous* fields
// carry the pre-mutation values so clients can undo locally without a
// server round trip.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`
	SegmentID string `json:"segmentId,omitempty"`

	// For segment.move
	StartTime     *float64 `json:"startTime,omitempty"`
	EndTime       *float64 `json:"endTime,omitempty"`
	PreviousStart *float64 `json:"previousStart,omitempty"`
	PreviousEnd   *float64 `json:"previousEnd,omitempty"`

	// For segment.create
	Segment json.RawMessage `json:"segment,omitempty"`

	// For segment.delete
	PreviousSegment json.RawMessage `json:"previousSegment,omitempty"`

	// For segment.rename
	LabelText     *string `json:"labelText,omitempty"`
	PreviousLabel *string `json:"previousLabel,omitempty"`

	// For segment.style
	Color         *string `json:"color,omitempty"`
	PreviousColor *string `json:"previousColor,omitempty"`

	// For project.rename
	Name         string `json:"name,omitempty"`
	PreviousName string `json:"previousName,omitempty"`

	// For view.update
	Changes json.RawMessage `json:"changes,omitempty"`
}

// OperationSubmitPayload is the payload for op.submit messages
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// DocSyncPayload carries the full document on join.
type DocSyncPayload struct {
	Document  json.RawMessage `json:"document"`
	ServerSeq int64           `json:"serverSeq"`
}
