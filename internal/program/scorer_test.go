package program

import (
	"math"
	"testing"

	"github.com/iliyamo/conference-program/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestScoreFinalDecisionAcceptIsConfirmed(t *testing.T) {
	s := model.Submission{
		Status:        model.StatusAccepted,
		FinalDecision: model.DecisionAccept,
	}
	got := ScoreSubmission(s)
	if got.Tier != TierConfirmed {
		t.Fatalf("tier = %q, want confirmed", got.Tier)
	}
	if got.HasProbability {
		t.Fatal("confirmed submissions must not carry a probability")
	}
}

func TestScoreBaselineHeuristics(t *testing.T) {
	// All three bonuses: 0.4 + 0.1 + 0.1 + 0.1 = 0.7, tier likely.
	s := model.Submission{
		Status:     model.StatusUnderReview,
		Discipline: "finance",
		Title:      "Paper",
		Abstract:   string(make([]byte, 300)),
		Keywords:   []string{"a", "b", "c", "d", "e"},
		CoAuthors:  []model.Author{{Name: "One"}, {Name: "Two"}},
	}
	got := ScoreSubmission(s)
	if math.Abs(got.Probability-0.7) > 1e-9 {
		t.Fatalf("probability = %v, want 0.7", got.Probability)
	}
	if got.Tier != TierLikely {
		t.Fatalf("tier = %q, want likely", got.Tier)
	}
}

func TestScoreBaselineNoBonuses(t *testing.T) {
	s := model.Submission{Status: model.StatusUnderReview, Abstract: "short"}
	got := ScoreSubmission(s)
	if got.Probability != 0.4 {
		t.Fatalf("probability = %v, want 0.4", got.Probability)
	}
	if got.Tier != TierUncertain {
		t.Fatalf("tier = %q, want uncertain", got.Tier)
	}
}

func TestScoreWithCompletedReviews(t *testing.T) {
	// avg score 4 -> (4-1)/4 = 0.75; recommendations accept + minor_revision
	// -> (1.0+0.8)/2 = 0.9; blend 0.6*0.75 + 0.4*0.9 = 0.81.
	s := model.Submission{
		Status: model.StatusUnderReview,
		Reviews: []model.Review{
			{Status: "completed", Score: floatPtr(4), Recommendation: model.RecommendAccept},
			{Status: "completed", Score: floatPtr(4), Recommendation: model.RecommendMinorRevision},
			{Status: "assigned"}, // not completed, must be ignored
		},
	}
	got := ScoreSubmission(s)
	if math.Abs(got.Probability-0.81) > 1e-9 {
		t.Fatalf("probability = %v, want 0.81", got.Probability)
	}
	if got.Tier != TierLikely {
		t.Fatalf("tier = %q, want likely", got.Tier)
	}
}

func TestScorePendingRevisionDampens(t *testing.T) {
	s := model.Submission{
		Status: model.StatusPendingRevision,
		Reviews: []model.Review{
			{Status: "completed", Score: floatPtr(5), Recommendation: model.RecommendStrongAccept},
		},
	}
	got := ScoreSubmission(s)
	// blend = 0.6*1.0 + 0.4*1.0 = 1.0; *0.8 = 0.8.
	if math.Abs(got.Probability-0.8) > 1e-9 {
		t.Fatalf("probability = %v, want 0.8", got.Probability)
	}
}

func TestScoreRevisedBoostCapped(t *testing.T) {
	s := model.Submission{
		Status: model.StatusRevised,
		Reviews: []model.Review{
			{Status: "completed", Score: floatPtr(5), Recommendation: model.RecommendStrongAccept},
		},
	}
	got := ScoreSubmission(s)
	if got.Probability != 0.9 {
		t.Fatalf("probability = %v, want 0.9 (revised boost cap)", got.Probability)
	}
}

func TestScoreProbabilityAlwaysClamped(t *testing.T) {
	low := model.Submission{
		Status: model.StatusUnderReview,
		Reviews: []model.Review{
			{Status: "completed", Score: floatPtr(1), Recommendation: model.RecommendStrongReject},
		},
	}
	got := ScoreSubmission(low)
	if got.Probability < 0.05 || got.Probability > 0.95 {
		t.Fatalf("probability %v outside [0.05, 0.95]", got.Probability)
	}
	if got.Tier != TierExcluded {
		t.Fatalf("tier = %q, want excluded for a clear reject", got.Tier)
	}
}

func TestScoreUnknownRecommendationWeight(t *testing.T) {
	s := model.Submission{
		Status: model.StatusUnderReview,
		Reviews: []model.Review{
			{Status: "completed", Score: floatPtr(3), Recommendation: "undecided"},
		},
	}
	got := ScoreSubmission(s)
	// scoreProb = 0.5, recommendation weight falls back to 0.4:
	// 0.6*0.5 + 0.4*0.4 = 0.46.
	if math.Abs(got.Probability-0.46) > 1e-9 {
		t.Fatalf("probability = %v, want 0.46", got.Probability)
	}
}

func TestScoreOtherStatusesExcluded(t *testing.T) {
	for _, status := range []string{model.StatusSubmitted, model.StatusRejected, model.StatusAccepted, model.StatusScheduled} {
		got := ScoreSubmission(model.Submission{Status: status})
		if got.Tier != TierExcluded {
			t.Fatalf("status %q: tier = %q, want excluded", status, got.Tier)
		}
	}
}
