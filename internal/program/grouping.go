package program

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/conference-program/internal/model"
)

// Grouping criteria accepted by the suggestion engine.
const (
	CriteriaDiscipline   = "discipline"
	CriteriaKeyword      = "keyword"
	CriteriaAvailability = "availability"
	CriteriaInstitution  = "institution"
	CriteriaTheme        = "theme"
)

// Suggestion is one proposed session grouping: a named bucket of
// submissions with a suggested title, duration and paper limit.
// Suggestions are ephemeral; nothing is persisted.
type Suggestion struct {
	Name              string             `json:"name"`
	Submissions       []model.Submission `json:"submissions"`
	SuggestedTitle    string             `json:"suggestedTitle"`
	SuggestedDuration int                `json:"suggestedDurationMinutes"`
	MaxPapers         int                `json:"maxPapers"`
}

// SuggestionBatch wraps one engine run.  The batch ID lets clients
// correlate follow-up calls and logs without the server keeping state.
type SuggestionBatch struct {
	BatchID     string       `json:"batchId"`
	Criteria    string       `json:"criteria"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Strategy partitions the accepted pool into suggested groupings.
// Implementations are pure; they never touch storage.
type Strategy interface {
	Name() string
	Group(subs []model.Submission) []Suggestion
}

// StrategyByName resolves a criteria string to its strategy, or a
// validation error for unknown values.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case CriteriaDiscipline:
		return disciplineStrategy{}, nil
	case CriteriaKeyword:
		return keywordStrategy{}, nil
	case CriteriaAvailability:
		return availabilityStrategy{}, nil
	case CriteriaInstitution:
		return institutionStrategy{}, nil
	case CriteriaTheme:
		return themeStrategy{}, nil
	}
	return nil, validationf("unknown grouping criteria %q", name)
}

// GroupingEngine runs a strategy over a conference's accepted pool.
type GroupingEngine struct {
	conferences ConferenceStore
	submissions SubmissionStore
}

// NewGroupingEngine wires the engine to its stores.
func NewGroupingEngine(conferences ConferenceStore, submissions SubmissionStore) *GroupingEngine {
	return &GroupingEngine{conferences: conferences, submissions: submissions}
}

// Suggest partitions the conference's accepted submissions under the
// named criteria.  The pool is a fresh query of accepted papers and is
// independent of any dashboard confidence level.
func (g *GroupingEngine) Suggest(ctx context.Context, conferenceID uint64, criteria string) (*SuggestionBatch, error) {
	strategy, err := StrategyByName(criteria)
	if err != nil {
		return nil, err
	}
	if _, err := g.conferences.GetByID(ctx, conferenceID); err != nil {
		return nil, err
	}
	pool, err := g.submissions.ListAccepted(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list accepted submissions: %w", err)
	}
	return &SuggestionBatch{
		BatchID:     uuid.NewString(),
		Criteria:    strategy.Name(),
		Suggestions: strategy.Group(pool),
	}, nil
}

// disciplineStrategy buckets by the discipline field.  Every non-empty
// bucket is kept regardless of size.
type disciplineStrategy struct{}

func (disciplineStrategy) Name() string { return CriteriaDiscipline }

func (disciplineStrategy) Group(subs []model.Submission) []Suggestion {
	buckets := map[string][]model.Submission{}
	for _, s := range subs {
		buckets[s.Discipline] = append(buckets[s.Discipline], s)
	}
	out := make([]Suggestion, 0, len(buckets))
	for d, members := range buckets {
		out = append(out, Suggestion{
			Name:              d,
			Submissions:       members,
			SuggestedTitle:    titleCase(d) + " Session",
			SuggestedDuration: 90,
			MaxPapers:         5,
		})
	}
	sortBySizeThenName(out)
	return out
}

// keywordStrategy buckets by normalized keyword.  Only keywords shared
// by at least two papers survive, and only the ten largest buckets are
// returned.
type keywordStrategy struct{}

func (keywordStrategy) Name() string { return CriteriaKeyword }

func (keywordStrategy) Group(subs []model.Submission) []Suggestion {
	buckets := map[string][]model.Submission{}
	for _, s := range subs {
		seen := map[string]bool{}
		for _, kw := range s.Keywords {
			norm := strings.ToLower(strings.TrimSpace(kw))
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			buckets[norm] = append(buckets[norm], s)
		}
	}
	var out []Suggestion
	for kw, members := range buckets {
		if len(members) < 2 {
			continue
		}
		out = append(out, Suggestion{
			Name:              kw,
			Submissions:       members,
			SuggestedTitle:    "Topics in " + titleCase(kw),
			SuggestedDuration: 90,
			MaxPapers:         4,
		})
	}
	sortBySizeThenName(out)
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// availabilityStrategy buckets by the six (day, half-day) slots.  A
// paper lands in every slot its presenter marked available; empty
// slots are dropped.
type availabilityStrategy struct{}

func (availabilityStrategy) Name() string { return CriteriaAvailability }

func (availabilityStrategy) Group(subs []model.Submission) []Suggestion {
	var out []Suggestion
	for _, slot := range model.AvailabilitySlots {
		var members []model.Submission
		for _, s := range subs {
			if s.Availability.ForSlot(slot) {
				members = append(members, s)
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, Suggestion{
			Name:              slot,
			Submissions:       members,
			SuggestedTitle:    slotTitle(slot) + " Session",
			SuggestedDuration: 90,
			MaxPapers:         5,
		})
	}
	return out
}

// institutionStrategy buckets by the corresponding author's
// affiliation and keeps buckets with at least two papers.
type institutionStrategy struct{}

func (institutionStrategy) Name() string { return CriteriaInstitution }

func (institutionStrategy) Group(subs []model.Submission) []Suggestion {
	buckets := map[string][]model.Submission{}
	for _, s := range subs {
		inst := strings.TrimSpace(s.CorrespondingAuthor.Affiliation)
		if inst == "" {
			continue
		}
		buckets[inst] = append(buckets[inst], s)
	}
	var out []Suggestion
	for inst, members := range buckets {
		if len(members) < 2 {
			continue
		}
		out = append(out, Suggestion{
			Name:              inst,
			Submissions:       members,
			SuggestedTitle:    "Research from " + inst,
			SuggestedDuration: 90,
			MaxPapers:         5,
		})
	}
	sortBySizeThenName(out)
	return out
}

// themeOrder fixes the presentation order of the theme dictionary.
var themeOrder = []string{
	"Financial Markets & Banking",
	"Economics & Public Policy",
	"Management & Strategy",
	"Analytics & Technology",
	"Pedagogy & Student Engagement",
}

// themeKeywords is the theme classifier's dictionary.  A submission
// matches a theme when its title or abstract contains any keyword,
// case-insensitively; relevance is the number of matching keywords.
var themeKeywords = map[string][]string{
	"Financial Markets & Banking":   {"finance", "banking", "investment", "market", "capital"},
	"Economics & Public Policy":     {"economic", "policy", "trade", "labor", "regulation"},
	"Management & Strategy":         {"management", "leadership", "strategy", "organizational", "entrepreneur"},
	"Analytics & Technology":        {"analytics", "data", "technology", "machine learning", "information system"},
	"Pedagogy & Student Engagement": {"teaching", "pedagogy", "student", "education", "classroom"},
}

// themeStrategy scores every paper against the theme dictionary.  A
// paper may appear under several themes; within a theme papers are
// ordered by descending relevance.
type themeStrategy struct{}

func (themeStrategy) Name() string { return CriteriaTheme }

func (themeStrategy) Group(subs []model.Submission) []Suggestion {
	type scored struct {
		sub       model.Submission
		relevance int
	}
	var out []Suggestion
	for _, theme := range themeOrder {
		var members []scored
		for _, s := range subs {
			text := strings.ToLower(s.Title + " " + s.Abstract)
			relevance := 0
			for _, kw := range themeKeywords[theme] {
				if strings.Contains(text, kw) {
					relevance++
				}
			}
			if relevance > 0 {
				members = append(members, scored{sub: s, relevance: relevance})
			}
		}
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].relevance > members[j].relevance
		})
		ordered := make([]model.Submission, len(members))
		for i, m := range members {
			ordered[i] = m.sub
		}
		out = append(out, Suggestion{
			Name:              theme,
			Submissions:       ordered,
			SuggestedTitle:    theme,
			SuggestedDuration: 90,
			MaxPapers:         5,
		})
	}
	return out
}

func sortBySizeThenName(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if len(s[i].Submissions) != len(s[j].Submissions) {
			return len(s[i].Submissions) > len(s[j].Submissions)
		}
		return s[i].Name < s[j].Name
	})
}

// titleCase uppercases the first letter of each space or underscore
// separated word; disciplines and keywords are stored lowercase.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// slotTitle renders an availability slot name for display, e.g.
// "wednesday_am" becomes "Wednesday Morning".
func slotTitle(slot string) string {
	parts := strings.SplitN(slot, "_", 2)
	day := titleCase(parts[0])
	half := "Morning"
	if len(parts) == 2 && parts[1] == "pm" {
		half = "Afternoon"
	}
	return day + " " + half
}
