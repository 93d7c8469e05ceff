package program

import (
	"context"
	"testing"

	"github.com/iliyamo/conference-program/internal/model"
)

func acceptedSub(id uint64, discipline string, keywords ...string) model.Submission {
	return model.Submission{
		ID:           id,
		ConferenceID: 1,
		Title:        "Paper",
		Status:       model.StatusAccepted,
		Discipline:   discipline,
		Keywords:     keywords,
	}
}

func TestDisciplineGroupingBucketsAll(t *testing.T) {
	subs := []model.Submission{
		acceptedSub(1, "finance"),
		acceptedSub(2, "finance"),
		acceptedSub(3, "marketing"),
	}
	got := disciplineStrategy{}.Group(subs)
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	// Largest bucket first.
	if got[0].Name != "finance" || len(got[0].Submissions) != 2 {
		t.Fatalf("first bucket = %q size %d, want finance size 2", got[0].Name, len(got[0].Submissions))
	}
	if got[0].SuggestedDuration != 90 || got[0].MaxPapers != 5 {
		t.Fatalf("discipline defaults = (%d, %d), want (90, 5)", got[0].SuggestedDuration, got[0].MaxPapers)
	}
}

func TestKeywordGroupingDropsSingletons(t *testing.T) {
	subs := []model.Submission{
		acceptedSub(1, "finance", "Banking ", "esg"),
		acceptedSub(2, "finance", "banking"),
		acceptedSub(3, "economics", "labor"),
	}
	got := keywordStrategy{}.Group(subs)
	if len(got) != 1 {
		t.Fatalf("got %d buckets, want 1 (only shared keywords survive)", len(got))
	}
	if got[0].Name != "banking" {
		t.Fatalf("bucket = %q, want normalized \"banking\"", got[0].Name)
	}
	for _, s := range got {
		if len(s.Submissions) < 2 {
			t.Fatalf("keyword bucket %q has %d members, minimum is 2", s.Name, len(s.Submissions))
		}
	}
	if got[0].MaxPapers != 4 {
		t.Fatalf("keyword max papers = %d, want 4", got[0].MaxPapers)
	}
}

func TestKeywordGroupingKeepsTopTen(t *testing.T) {
	var subs []model.Submission
	// 12 keywords each shared by two papers.
	for i := 0; i < 12; i++ {
		kw := string(rune('a' + i))
		subs = append(subs,
			acceptedSub(uint64(2*i+1), "finance", kw),
			acceptedSub(uint64(2*i+2), "finance", kw),
		)
	}
	got := keywordStrategy{}.Group(subs)
	if len(got) != 10 {
		t.Fatalf("got %d buckets, want top 10", len(got))
	}
}

func TestAvailabilityGroupingAtMostSixBuckets(t *testing.T) {
	everywhere := acceptedSub(1, "finance")
	everywhere.Availability = model.Availability{
		WednesdayAM: true, WednesdayPM: true,
		ThursdayAM: true, ThursdayPM: true,
		FridayAM: true, FridayPM: true,
	}
	onlyFriday := acceptedSub(2, "finance")
	onlyFriday.Availability = model.Availability{FridayAM: true}

	got := availabilityStrategy{}.Group([]model.Submission{everywhere, onlyFriday})
	if len(got) > 6 {
		t.Fatalf("got %d buckets, maximum is 6", len(got))
	}
	var fridayAM *Suggestion
	for i := range got {
		if got[i].Name == "friday_am" {
			fridayAM = &got[i]
		}
	}
	if fridayAM == nil || len(fridayAM.Submissions) != 2 {
		t.Fatal("friday_am bucket should contain both submissions")
	}
}

func TestAvailabilityGroupingDropsEmptySlots(t *testing.T) {
	sub := acceptedSub(1, "finance")
	sub.Availability = model.Availability{ThursdayPM: true}
	got := availabilityStrategy{}.Group([]model.Submission{sub})
	if len(got) != 1 || got[0].Name != "thursday_pm" {
		t.Fatalf("got %v, want single thursday_pm bucket", got)
	}
}

func TestInstitutionGroupingMinimumTwo(t *testing.T) {
	a := acceptedSub(1, "finance")
	a.CorrespondingAuthor = model.Author{Name: "A", Affiliation: "State University"}
	b := acceptedSub(2, "economics")
	b.CorrespondingAuthor = model.Author{Name: "B", Affiliation: "State University"}
	c := acceptedSub(3, "finance")
	c.CorrespondingAuthor = model.Author{Name: "C", Affiliation: "Lone College"}

	got := institutionStrategy{}.Group([]model.Submission{a, b, c})
	if len(got) != 1 {
		t.Fatalf("got %d buckets, want 1", len(got))
	}
	if got[0].Name != "State University" || len(got[0].Submissions) != 2 {
		t.Fatalf("bucket = %q size %d", got[0].Name, len(got[0].Submissions))
	}
}

func TestThemeGroupingRanksByRelevance(t *testing.T) {
	strong := acceptedSub(1, "finance")
	strong.Title = "Banking and capital market efficiency"
	strong.Abstract = "An investment study of finance."
	weak := acceptedSub(2, "finance")
	weak.Title = "A note on banking"
	unrelated := acceptedSub(3, "pedagogy")
	unrelated.Title = "Excavating pottery"

	got := themeStrategy{}.Group([]model.Submission{weak, strong, unrelated})
	var financial *Suggestion
	for i := range got {
		if got[i].Name == "Financial Markets & Banking" {
			financial = &got[i]
		}
	}
	if financial == nil {
		t.Fatal("expected a Financial Markets & Banking bucket")
	}
	if len(financial.Submissions) != 2 {
		t.Fatalf("financial bucket size = %d, want 2", len(financial.Submissions))
	}
	if financial.Submissions[0].ID != strong.ID {
		t.Fatalf("first member = %d, want the most relevant submission %d", financial.Submissions[0].ID, strong.ID)
	}
}

func TestThemeGroupingAllowsMultipleMembership(t *testing.T) {
	sub := acceptedSub(1, "finance")
	sub.Title = "Teaching finance with data analytics"
	got := themeStrategy{}.Group([]model.Submission{sub})
	if len(got) < 2 {
		t.Fatalf("submission matching several themes should appear in each; got %d buckets", len(got))
	}
}

func TestSuggestRejectsUnknownCriteria(t *testing.T) {
	m := newMemStore()
	m.addConference(model.Conference{ID: 1, Name: "SOBIE 2025"})
	engine := NewGroupingEngine(m.conferenceStore(), m)

	_, err := engine.Suggest(context.Background(), 1, "vibes")
	if err == nil {
		t.Fatal("expected validation error for unknown criteria")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
}

func TestSuggestUsesAcceptedPoolOnly(t *testing.T) {
	m := newMemStore()
	m.addConference(model.Conference{ID: 1, Name: "SOBIE 2025"})
	m.addSubmission(acceptedSub(1, "finance"))
	pending := acceptedSub(2, "finance")
	pending.Status = model.StatusUnderReview
	m.addSubmission(pending)

	engine := NewGroupingEngine(m.conferenceStore(), m)
	batch, err := engine.Suggest(context.Background(), 1, CriteriaDiscipline)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if batch.BatchID == "" {
		t.Fatal("batch id must be set")
	}
	if len(batch.Suggestions) != 1 || len(batch.Suggestions[0].Submissions) != 1 {
		t.Fatalf("under-review papers must not enter the grouping pool: %+v", batch.Suggestions)
	}
}
