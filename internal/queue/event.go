// Package queue defines message payloads exchanged over the message
// broker.
package queue

// ProgramQueueName is the durable queue program events flow through.
const ProgramQueueName = "program.updated"

// ProgramUpdatedEvent is published after a session mutation commits.
// It carries enough information for downstream consumers (audit log,
// notifications, analytics) without querying the primary database.
type ProgramUpdatedEvent struct {
	EventID             string   `json:"event_id"`
	Action              string   `json:"action"` // created, updated, deleted
	ConferenceID        uint64   `json:"conference_id"`
	SessionID           uint64   `json:"session_id"`
	SessionTitle        string   `json:"session_title,omitempty"`
	SessionNumber       uint32   `json:"session_number,omitempty"`
	AffectedSubmissions []uint64 `json:"affected_submissions,omitempty"`
	OccurredAt          string   `json:"occurred_at"`
}
