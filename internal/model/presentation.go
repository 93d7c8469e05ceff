package model

import "time"

// Presentation materializes the link between one submission and one
// session.  It is a denormalized snapshot taken at assignment time so
// the printed program survives later edits to the submission.  At most
// one presentation exists per (submission, session) pair, and a
// submission holds at most one active presentation at a time.
//
// Fields:
//  ID           – primary key identifier.
//  SubmissionID – back-reference to the source submission.
//  SessionID    – back-reference to the owning session.
//  ConferenceID – conference both sides belong to.
//  Title        – submission title at assignment time.
//  Presenters   – author names, corresponding author first.
//  Abstract     – abstract snapshot.
//  Discipline   – discipline snapshot.
//  Keywords     – keyword snapshot.
//  OrderIndex   – position within the session's presentation list.
//  CreatedAt    – when the assignment was made.
type Presentation struct {
	ID           uint64    `json:"id"`
	SubmissionID uint64    `json:"submissionId"`
	SessionID    uint64    `json:"sessionId"`
	ConferenceID uint64    `json:"conferenceId"`
	Title        string    `json:"title"`
	Presenters   []string  `json:"presenters"`
	Abstract     string    `json:"abstract"`
	Discipline   string    `json:"discipline"`
	Keywords     []string  `json:"keywords"`
	OrderIndex   uint32    `json:"orderIndex"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SnapshotPresentation builds the presentation record for assigning a
// submission to a session.  The snapshot copies the fields the printed
// program needs; it does not persist anything.
func SnapshotPresentation(sub Submission, sessionID uint64, order uint32) Presentation {
	return Presentation{
		SubmissionID: sub.ID,
		SessionID:    sessionID,
		ConferenceID: sub.ConferenceID,
		Title:        sub.Title,
		Presenters:   sub.Presenters(),
		Abstract:     sub.Abstract,
		Discipline:   sub.Discipline,
		Keywords:     append([]string(nil), sub.Keywords...),
		OrderIndex:   order,
	}
}
