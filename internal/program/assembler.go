package program

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/conference-program/internal/model"
)

// SessionInput carries the client-supplied session fields for create
// and update.  Times arrive as strings and are parsed into
// model.TimeOfDay; both "15:04" and "9:00 AM" layouts are accepted.
type SessionInput struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Room        string   `json:"room"`
	Chair       string   `json:"chair"`
	Moderators  []string `json:"moderators"`
}

// SessionValidation is the validity report for one session: hard flags
// a planner must resolve plus softer suggestions.
type SessionValidation struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Assembler creates, edits and deletes sessions and owns the
// submission↔session assignment relationship.  All multi-row mutations
// are pushed into single-transaction store operations so partial
// failures cannot strand a submission in the wrong status.
type Assembler struct {
	sessions      SessionStore
	submissions   SubmissionStore
	presentations PresentationStore
	conferences   ConferenceStore
}

// NewAssembler wires the assembler to its stores.
func NewAssembler(sessions SessionStore, submissions SubmissionStore, presentations PresentationStore, conferences ConferenceStore) *Assembler {
	return &Assembler{
		sessions:      sessions,
		submissions:   submissions,
		presentations: presentations,
		conferences:   conferences,
	}
}

// Create builds a new session for the conference and assigns the given
// submissions to it.  Title, date and start time are required.  The
// session receives the next sequential number for its conference; each
// assigned submission gets a presentation snapshot and moves to the
// scheduled status.  The returned session has presentations expanded.
func (a *Assembler) Create(ctx context.Context, conferenceID uint64, in SessionInput, submissionIDs []uint64) (*model.Session, error) {
	if _, err := a.conferences.GetByID(ctx, conferenceID); err != nil {
		return nil, err
	}

	s, err := sessionFromInput(in)
	if err != nil {
		return nil, err
	}
	if s.Title == "" {
		return nil, validationf("session title is required")
	}
	if s.Date == "" {
		return nil, validationf("session date is required")
	}
	if strings.TrimSpace(in.StartTime) == "" {
		return nil, validationf("session start time is required")
	}
	s.ConferenceID = conferenceID

	assignments, err := a.snapshotAll(ctx, conferenceID, submissionIDs, 0)
	if err != nil {
		return nil, err
	}

	if err := a.sessions.CreateWithAssignments(ctx, s, assignments); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return a.expand(ctx, s)
}

// Update applies the field patch and assignment changes to an existing
// session.  expectedVersion must match the stored version; a stale
// token fails with repository.ErrVersionConflict rather than silently
// dropping a concurrent edit.  Added submissions are snapshotted like
// in Create; removed ones lose their presentation and return to the
// accepted status.
func (a *Assembler) Update(ctx context.Context, sessionID uint64, in SessionInput, addIDs, removeIDs []uint64, expectedVersion uint32) (*model.Session, error) {
	current, err := a.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	patched, err := patchSession(*current, in)
	if err != nil {
		return nil, err
	}

	existing, err := a.presentations.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	assigned := map[uint64]bool{}
	maxOrder := uint32(0)
	for _, p := range existing {
		assigned[p.SubmissionID] = true
		if p.OrderIndex >= maxOrder {
			maxOrder = p.OrderIndex + 1
		}
	}

	var add []model.Presentation
	for _, id := range addIDs {
		if assigned[id] {
			// one presentation per (submission, session) pair
			continue
		}
		sub, err := a.submissions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sub.ConferenceID != current.ConferenceID {
			return nil, validationf("submission %d belongs to a different conference", id)
		}
		if sub.Status == model.StatusScheduled {
			return nil, validationf("submission %d is already scheduled in another session", id)
		}
		add = append(add, model.SnapshotPresentation(*sub, sessionID, maxOrder))
		assigned[id] = true
		maxOrder++
	}

	var remove []uint64
	for _, id := range removeIDs {
		if assigned[id] {
			remove = append(remove, id)
		}
	}

	if err := a.sessions.UpdateWithAssignments(ctx, patched, expectedVersion, add, remove); err != nil {
		return nil, err
	}

	return a.expand(ctx, patched)
}

// Delete removes a session, deletes all of its presentations and
// resets every formerly-assigned submission to accepted.  It returns a
// snapshot of the deleted session together with the IDs of the
// submissions that were reset.
func (a *Assembler) Delete(ctx context.Context, sessionID uint64) (*model.Session, []uint64, error) {
	s, err := a.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	affected, err := a.sessions.DeleteCascade(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return s, affected, nil
}

// Validate inspects a session and reports hard issues (too short, too
// crowded, missing chair or room) plus heuristic recommendations for
// the planner.  Presentations must already be expanded on the session.
func Validate(s model.Session) SessionValidation {
	v := SessionValidation{Valid: true}

	flag := func(msg string) {
		v.Valid = false
		v.Issues = append(v.Issues, msg)
	}

	if s.DurationMinutes() < 60 {
		flag("session is shorter than 60 minutes")
	}
	if len(s.Presentations) > 6 {
		flag("session has more than 6 presentations")
	}
	if strings.TrimSpace(s.Chair) == "" {
		flag("session has no chair assigned")
	}
	if strings.TrimSpace(s.Room) == "" {
		flag("session has no room assigned")
	}

	if len(s.Presentations) == 0 {
		v.Recommendations = append(v.Recommendations, "add presentations to this session")
	}
	if len(s.Moderators) == 0 {
		v.Recommendations = append(v.Recommendations, "assign a moderator")
	}
	if strings.TrimSpace(s.Description) == "" {
		v.Recommendations = append(v.Recommendations, "add a description for the printed program")
	}

	return v
}

// sessionFromInput parses a full SessionInput into a session, applying
// the category and time-of-day validation shared by create and patch.
func sessionFromInput(in SessionInput) (*model.Session, error) {
	s := &model.Session{
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Room:        strings.TrimSpace(in.Room),
		Chair:       strings.TrimSpace(in.Chair),
		Moderators:  in.Moderators,
	}
	if !model.ValidSessionCategory(s.Category) {
		return nil, validationf("unknown session category %q", s.Category)
	}
	if s.Date != "" {
		if _, err := time.Parse("2006-01-02", s.Date); err != nil {
			return nil, validationf("invalid session date %q", s.Date)
		}
	}
	if t := strings.TrimSpace(in.StartTime); t != "" {
		start, err := model.ParseTimeOfDay(t)
		if err != nil {
			return nil, validationf("invalid start time %q", t)
		}
		s.StartTime = start
	}
	if t := strings.TrimSpace(in.EndTime); t != "" {
		end, err := model.ParseTimeOfDay(t)
		if err != nil {
			return nil, validationf("invalid end time %q", t)
		}
		s.EndTime = end
	}
	if in.StartTime != "" && in.EndTime != "" && s.EndTime <= s.StartTime {
		return nil, validationf("end time must be after start time")
	}
	return s, nil
}

// patchSession overlays the non-empty fields of the input onto an
// existing session.  Empty strings leave the current value untouched;
// moderators are replaced wholesale when provided.
func patchSession(current model.Session, in SessionInput) (*model.Session, error) {
	parsed, err := sessionFromInput(in)
	if err != nil {
		return nil, err
	}
	s := current
	if parsed.Title != "" {
		s.Title = parsed.Title
	}
	if parsed.Category != "" {
		s.Category = parsed.Category
	}
	if parsed.Description != "" {
		s.Description = parsed.Description
	}
	if parsed.Date != "" {
		s.Date = parsed.Date
	}
	if strings.TrimSpace(in.StartTime) != "" {
		s.StartTime = parsed.StartTime
	}
	if strings.TrimSpace(in.EndTime) != "" {
		s.EndTime = parsed.EndTime
	}
	if parsed.Room != "" {
		s.Room = parsed.Room
	}
	if parsed.Chair != "" {
		s.Chair = parsed.Chair
	}
	if in.Moderators != nil {
		s.Moderators = in.Moderators
	}
	if s.EndTime != 0 && s.EndTime <= s.StartTime {
		return nil, validationf("end time must be after start time")
	}
	return &s, nil
}

// snapshotAll loads each submission and builds its presentation
// snapshot, preserving the requested order.  Submissions from another
// conference and submissions already scheduled into a session are
// rejected; a submission holds at most one active presentation.
func (a *Assembler) snapshotAll(ctx context.Context, conferenceID uint64, submissionIDs []uint64, startOrder uint32) ([]model.Presentation, error) {
	seen := map[uint64]bool{}
	var out []model.Presentation
	order := startOrder
	for _, id := range submissionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		sub, err := a.submissions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sub.ConferenceID != conferenceID {
			return nil, validationf("submission %d belongs to a different conference", id)
		}
		if sub.Status == model.StatusScheduled {
			return nil, validationf("submission %d is already scheduled in another session", id)
		}
		out = append(out, model.SnapshotPresentation(*sub, 0, order))
		order++
	}
	return out, nil
}

// expand reloads the session's presentations for the response.
func (a *Assembler) expand(ctx context.Context, s *model.Session) (*model.Session, error) {
	pres, err := a.presentations.ListBySession(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("expand session %d: %w", s.ID, err)
	}
	s.Presentations = pres
	return s, nil
}
