// Package program implements the program builder: scoring submissions
// for acceptance likelihood, assembling the planning dashboard,
// creating and editing sessions, proposing session groupings and
// detecting schedule conflicts.  All services speak to storage through
// the narrow interfaces below so the logic can be exercised without a
// database.
package program

import (
	"context"
	"fmt"

	"github.com/iliyamo/conference-program/internal/model"
)

// SubmissionStore provides read access to submissions plus the status
// transitions owned by the session assembler.
type SubmissionStore interface {
	// GetByID returns one submission or repository.ErrSubmissionNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Submission, error)
	// ListByConference returns every submission of a conference.
	ListByConference(ctx context.Context, conferenceID uint64) ([]model.Submission, error)
	// ListAccepted returns submissions whose status is accepted or
	// scheduled, the pool the grouping engine works from.
	ListAccepted(ctx context.Context, conferenceID uint64) ([]model.Submission, error)
}

// SessionStore persists sessions together with their presentation
// assignments.  The multi-row mutations run inside a single database
// transaction so a failure mid-sequence never leaves a submission
// marked scheduled without a presentation, or the reverse.
type SessionStore interface {
	// GetByID returns one session (presentations not expanded) or
	// repository.ErrSessionNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Session, error)
	// ListByConference returns all sessions of a conference ordered by
	// session number.
	ListByConference(ctx context.Context, conferenceID uint64) ([]model.Session, error)
	// CreateWithAssignments inserts the session, assigns it the next
	// sequential number for its conference, inserts the given
	// presentations and marks their submissions scheduled.  The
	// session's ID, SessionNumber and Version are populated on return.
	CreateWithAssignments(ctx context.Context, s *model.Session, assignments []model.Presentation) error
	// UpdateWithAssignments applies the session's fields via
	// compare-and-swap on expectedVersion, inserts the added
	// presentations (marking their submissions scheduled) and removes
	// the presentations of removeSubmissionIDs (resetting their
	// submissions to accepted).  A stale version yields
	// repository.ErrVersionConflict.
	UpdateWithAssignments(ctx context.Context, s *model.Session, expectedVersion uint32, add []model.Presentation, removeSubmissionIDs []uint64) error
	// DeleteCascade removes the session and all of its presentations,
	// resetting every affected submission to accepted.  It returns the
	// IDs of the submissions that were reset.
	DeleteCascade(ctx context.Context, id uint64) ([]uint64, error)
}

// PresentationStore provides read access to assignment snapshots.
type PresentationStore interface {
	ListBySession(ctx context.Context, sessionID uint64) ([]model.Presentation, error)
	ListByConference(ctx context.Context, conferenceID uint64) ([]model.Presentation, error)
}

// ConferenceStore resolves conference identifiers.
type ConferenceStore interface {
	// GetByID returns one conference or repository.ErrConferenceNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Conference, error)
}

// UserStore lists accounts for moderator candidate selection.
type UserStore interface {
	// ListActive returns all active user accounts.
	ListActive(ctx context.Context) ([]model.User, error)
}

// ValidationError marks malformed input: missing required session
// fields, unknown grouping criteria and the like.  Handlers translate
// it into a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
