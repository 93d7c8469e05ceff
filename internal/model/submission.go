package model

import "time"

// Submission lifecycle statuses.  A submission moves from SUBMITTED
// through the review workflow and, once accepted, may additionally be
// marked SCHEDULED when it is placed into a session.  Unassigning a
// scheduled submission always returns it to ACCEPTED, never back into
// review.
const (
	StatusSubmitted       = "submitted"
	StatusUnderReview     = "under_review"
	StatusPendingRevision = "pending_revision"
	StatusRevised         = "revised"
	StatusAccepted        = "accepted"
	StatusRejected        = "rejected"
	StatusScheduled       = "scheduled"
)

// Final decisions recorded by the review workflow.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Reviewer recommendation values used by the acceptance scorer.
const (
	RecommendStrongAccept  = "strong_accept"
	RecommendAccept        = "accept"
	RecommendMinorRevision = "minor_revision"
	RecommendMajorRevision = "major_revision"
	RecommendReject        = "reject"
	RecommendStrongReject  = "strong_reject"
)

// Author identifies one author of a submission.  When the author has a
// platform account, UserID links back to the users table.
//
// Fields:
//  Name        – full display name.
//  Affiliation – institution or company the author belongs to.
//  UserID      – linked user account (nil when unregistered).
type Author struct {
	Name        string  `json:"name"`
	Affiliation string  `json:"affiliation"`
	UserID      *uint64 `json:"userId,omitempty"`
}

// Review is one reviewer's sub-record inside a submission's review
// workflow.  Score is on a 1–5 scale and only meaningful once the
// review is completed.
//
// Fields:
//  ReviewerID     – user who performed the review.
//  Status         – review progress (assigned, in_progress, completed).
//  Score          – numeric score 1–5 (nil until completed).
//  Recommendation – reviewer's recommendation (see Recommend* values).
type Review struct {
	ReviewerID     uint64   `json:"reviewerId"`
	Status         string   `json:"status"`
	Score          *float64 `json:"score,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Completed reports whether the review has been finished and therefore
// counts toward the acceptance score.
func (r Review) Completed() bool { return r.Status == "completed" }

// Availability records the presenter's time-slot availability across
// the three conference days, split into morning and afternoon halves.
// Note carries a free-form explanation when the presenter has a
// scheduling conflict.
type Availability struct {
	WednesdayAM bool   `json:"wednesdayAm"`
	WednesdayPM bool   `json:"wednesdayPm"`
	ThursdayAM  bool   `json:"thursdayAm"`
	ThursdayPM  bool   `json:"thursdayPm"`
	FridayAM    bool   `json:"fridayAm"`
	FridayPM    bool   `json:"fridayPm"`
	Note        string `json:"note,omitempty"`
}

// AvailabilitySlots lists the six (day, half-day) slot names in
// program order.  Aggregation and grouping iterate this list so output
// ordering is stable.
var AvailabilitySlots = []string{
	"wednesday_am", "wednesday_pm",
	"thursday_am", "thursday_pm",
	"friday_am", "friday_pm",
}

// ForSlot returns the availability flag for one of the names in
// AvailabilitySlots.  Unknown slot names report unavailable.
func (a Availability) ForSlot(slot string) bool {
	switch slot {
	case "wednesday_am":
		return a.WednesdayAM
	case "wednesday_pm":
		return a.WednesdayPM
	case "thursday_am":
		return a.ThursdayAM
	case "thursday_pm":
		return a.ThursdayPM
	case "friday_am":
		return a.FridayAM
	case "friday_pm":
		return a.FridayPM
	}
	return false
}

// AvailableAnywhere reports whether at least one of the six slots is
// marked available.
func (a Availability) AvailableAnywhere() bool {
	for _, slot := range AvailabilitySlots {
		if a.ForSlot(slot) {
			return true
		}
	}
	return false
}

// Submission is a paper under consideration for the conference
// program.  The nested author, review and availability records are
// owned by the submission and stored as JSON columns alongside it.
//
// Fields:
//  ID                  – primary key identifier.
//  ConferenceID        – conference the paper was submitted to.
//  Title               – paper title.
//  Abstract            – paper abstract text.
//  Keywords            – set of author-supplied keywords.
//  Discipline          – subject track (finance, economics, ...).
//  Status              – lifecycle status (see Status* values).
//  FinalDecision       – final review decision, empty until decided.
//  CorrespondingAuthor – primary contact and default presenter.
//  CoAuthors           – remaining authors in listed order.
//  Reviews             – reviewer sub-records for this paper.
//  Availability        – presenter time-slot availability.
//  CreatedAt           – row creation timestamp.
//  UpdatedAt           – last update timestamp.
type Submission struct {
	ID                  uint64       `json:"id"`
	ConferenceID        uint64       `json:"conferenceId"`
	Title               string       `json:"title"`
	Abstract            string       `json:"abstract"`
	Keywords            []string     `json:"keywords"`
	Discipline          string       `json:"discipline"`
	Status              string       `json:"status"`
	FinalDecision       string       `json:"finalDecision,omitempty"`
	CorrespondingAuthor Author       `json:"correspondingAuthor"`
	CoAuthors           []Author     `json:"coAuthors"`
	Reviews             []Review     `json:"reviews"`
	Availability        Availability `json:"availability"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// CompletedReviews returns only the reviews that have been finished.
func (s Submission) CompletedReviews() []Review {
	var done []Review
	for _, r := range s.Reviews {
		if r.Completed() {
			done = append(done, r)
		}
	}
	return done
}

// Presenters returns the names of everyone listed on the paper, with
// the corresponding author first.
func (s Submission) Presenters() []string {
	names := make([]string, 0, 1+len(s.CoAuthors))
	names = append(names, s.CorrespondingAuthor.Name)
	for _, a := range s.CoAuthors {
		names = append(names, a.Name)
	}
	return names
}
