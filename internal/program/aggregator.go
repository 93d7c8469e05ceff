package program

import (
	"context"
	"fmt"
	"sort"

	"github.com/iliyamo/conference-program/internal/model"
)

// Confidence levels selecting how speculative the dashboard's working
// pool is allowed to be.  Conservative keeps only confirmed papers,
// high adds likely ones and medium adds the uncertain tier.
const (
	ConfidenceConservative = "conservative"
	ConfidenceMedium       = "medium"
	ConfidenceHigh         = "high"
)

// ScoredSubmission pairs a submission with its acceptance score for
// dashboard display.
type ScoredSubmission struct {
	Submission model.Submission `json:"submission"`
	Score      Score            `json:"score"`
}

// DisciplineGroup is one slice of the pool sharing a discipline.
type DisciplineGroup struct {
	Discipline  string             `json:"discipline"`
	Submissions []model.Submission `json:"submissions"`
}

// AvailabilityConflict identifies a submission unavailable in a slot,
// carrying the presenter's conflict note for the planner.
type AvailabilityConflict struct {
	SubmissionID uint64 `json:"submissionId"`
	Title        string `json:"title"`
	Note         string `json:"note,omitempty"`
}

// SlotSummary counts pool availability for one (day, half-day) slot.
type SlotSummary struct {
	Slot        string                 `json:"slot"`
	Available   int                    `json:"available"`
	Unavailable int                    `json:"unavailable"`
	Conflicts   []AvailabilityConflict `json:"conflicts"`
}

// Dashboard is the aggregated planning view for one conference.
type Dashboard struct {
	Conference          model.Conference   `json:"conference"`
	Confirmed           []ScoredSubmission `json:"confirmed"`
	Likely              []ScoredSubmission `json:"likely"`
	Uncertain           []ScoredSubmission `json:"uncertain"`
	Sessions            []model.Session    `json:"sessions"`
	Unassigned          []model.Submission `json:"unassigned"`
	DisciplineGroups    []DisciplineGroup  `json:"disciplineGroups"`
	ModeratorCandidates []model.User       `json:"moderatorCandidates"`
	Availability        []SlotSummary      `json:"availability"`
}

// Aggregator builds the read-only program dashboard.
type Aggregator struct {
	conferences   ConferenceStore
	submissions   SubmissionStore
	sessions      SessionStore
	presentations PresentationStore
	users         UserStore
}

// NewAggregator wires the aggregator to its stores.
func NewAggregator(conferences ConferenceStore, submissions SubmissionStore, sessions SessionStore, presentations PresentationStore, users UserStore) *Aggregator {
	return &Aggregator{
		conferences:   conferences,
		submissions:   submissions,
		sessions:      sessions,
		presentations: presentations,
		users:         users,
	}
}

// Dashboard assembles the planning view for a conference.  Every
// non-final submission is tiered by the acceptance scorer; the working
// pool is confirmed papers plus the tier admitted by confidenceLevel
// (likely at high, uncertain at medium).  When includeUnderReview is
// false, papers still in review are left out entirely and the pool is
// just the confirmed tier.  The call has no side effects.
func (a *Aggregator) Dashboard(ctx context.Context, conferenceID uint64, confidenceLevel string, includeUnderReview bool) (*Dashboard, error) {
	switch confidenceLevel {
	case ConfidenceConservative, ConfidenceMedium, ConfidenceHigh:
	case "":
		confidenceLevel = ConfidenceConservative
	default:
		return nil, validationf("invalid confidence level %q", confidenceLevel)
	}

	conf, err := a.conferences.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, err
	}

	subs, err := a.submissions.ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	d := &Dashboard{Conference: *conf}
	for _, sub := range subs {
		score := ScoreSubmission(sub)
		switch score.Tier {
		case TierConfirmed:
			d.Confirmed = append(d.Confirmed, ScoredSubmission{Submission: sub, Score: score})
		case TierLikely:
			if includeUnderReview {
				d.Likely = append(d.Likely, ScoredSubmission{Submission: sub, Score: score})
			}
		case TierUncertain:
			if includeUnderReview {
				d.Uncertain = append(d.Uncertain, ScoredSubmission{Submission: sub, Score: score})
			}
		}
	}

	pool := poolFor(d, confidenceLevel)

	sessions, err := a.sessions.ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for i := range sessions {
		pres, err := a.presentations.ListBySession(ctx, sessions[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list presentations for session %d: %w", sessions[i].ID, err)
		}
		sessions[i].Presentations = pres
	}
	d.Sessions = sessions

	assigned := map[uint64]bool{}
	for _, s := range sessions {
		for _, p := range s.Presentations {
			assigned[p.SubmissionID] = true
		}
	}
	for _, sub := range pool {
		if !assigned[sub.ID] {
			d.Unassigned = append(d.Unassigned, sub)
		}
	}

	d.DisciplineGroups = groupByDiscipline(pool)
	d.Availability = summarizeAvailability(pool)

	users, err := a.users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.ModeratorCandidate() {
			d.ModeratorCandidates = append(d.ModeratorCandidates, u)
		}
	}

	return d, nil
}

// poolFor selects the working pool from the tiered dashboard lists.
func poolFor(d *Dashboard, level string) []model.Submission {
	var pool []model.Submission
	for _, s := range d.Confirmed {
		pool = append(pool, s.Submission)
	}
	switch level {
	case ConfidenceHigh:
		for _, s := range d.Likely {
			pool = append(pool, s.Submission)
		}
	case ConfidenceMedium:
		for _, s := range d.Uncertain {
			pool = append(pool, s.Submission)
		}
	}
	return pool
}

// groupByDiscipline partitions the pool by discipline.  Groups come
// back sorted by size descending, then name, so the dashboard renders
// deterministically.
func groupByDiscipline(pool []model.Submission) []DisciplineGroup {
	byDiscipline := map[string][]model.Submission{}
	for _, sub := range pool {
		byDiscipline[sub.Discipline] = append(byDiscipline[sub.Discipline], sub)
	}
	groups := make([]DisciplineGroup, 0, len(byDiscipline))
	for d, subs := range byDiscipline {
		groups = append(groups, DisciplineGroup{Discipline: d, Submissions: subs})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Submissions) != len(groups[j].Submissions) {
			return len(groups[i].Submissions) > len(groups[j].Submissions)
		}
		return groups[i].Discipline < groups[j].Discipline
	})
	return groups
}

// summarizeAvailability counts per-slot presenter availability across
// the pool, collecting conflict notes for the unavailable side.
func summarizeAvailability(pool []model.Submission) []SlotSummary {
	summaries := make([]SlotSummary, 0, len(model.AvailabilitySlots))
	for _, slot := range model.AvailabilitySlots {
		s := SlotSummary{Slot: slot}
		for _, sub := range pool {
			if sub.Availability.ForSlot(slot) {
				s.Available++
				continue
			}
			s.Unavailable++
			s.Conflicts = append(s.Conflicts, AvailabilityConflict{
				SubmissionID: sub.ID,
				Title:        sub.Title,
				Note:         sub.Availability.Note,
			})
		}
		summaries = append(summaries, s)
	}
	return summaries
}
