package model

import "time"

// Session track categories.  The category enum is closed; handlers
// reject values outside this list.
var SessionCategories = []string{
	"research",
	"pedagogy",
	"student_research",
	"panel",
	"workshop",
	"keynote",
}

// ValidSessionCategory reports whether the given category is one of
// the closed track names.  The empty string is allowed; a category can
// be assigned later.
func ValidSessionCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, known := range SessionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Session is a scheduled block of the conference program.  Sessions
// are numbered sequentially within a conference and carry an ordered
// list of presentations.  Version supports compare-and-swap updates so
// two concurrent edits cannot silently overwrite each other.
//
// Fields:
//  ID            – primary key identifier.
//  ConferenceID  – conference this session belongs to.
//  SessionNumber – sequential number, unique per conference.
//  Title         – session title.
//  Category      – track name (see SessionCategories).
//  Description   – optional program-book description.
//  Date          – session day in "2006-01-02" form.
//  StartTime     – wall-clock start (minutes since midnight).
//  EndTime       – wall-clock end.
//  Room          – assigned room, empty when unassigned.
//  Chair         – session chair name, empty when unassigned.
//  Moderators    – moderator names in listed order.
//  Version       – optimistic-lock token, bumped on every update.
//  Presentations – assigned presentations in program order.
//  CreatedAt     – row creation timestamp.
//  UpdatedAt     – last update timestamp.
type Session struct {
	ID            uint64         `json:"id"`
	ConferenceID  uint64         `json:"conferenceId"`
	SessionNumber uint32         `json:"sessionNumber"`
	Title         string         `json:"title"`
	Category      string         `json:"category,omitempty"`
	Description   string         `json:"description,omitempty"`
	Date          string         `json:"date"`
	StartTime     TimeOfDay      `json:"startTime"`
	EndTime       TimeOfDay      `json:"endTime"`
	Room          string         `json:"room,omitempty"`
	Chair         string         `json:"chair,omitempty"`
	Moderators    []string       `json:"moderators"`
	Version       uint32         `json:"version"`
	Presentations []Presentation `json:"presentations"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// DurationMinutes returns the scheduled length of the session.  A
// session whose end precedes its start reports zero rather than a
// negative duration.
func (s Session) DurationMinutes() int {
	d := s.EndTime.Minutes() - s.StartTime.Minutes()
	if d < 0 {
		return 0
	}
	return d
}

// Overlaps reports whether two sessions occupy intersecting time
// ranges on the same date.  Touching boundaries (one ends exactly when
// the other starts) do not overlap.
func (s Session) Overlaps(other Session) bool {
	if s.Date != other.Date {
		return false
	}
	return s.StartTime < other.EndTime && other.StartTime < s.EndTime
}
