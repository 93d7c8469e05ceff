package program

import "github.com/iliyamo/conference-program/internal/model"

// Confidence tiers assigned by the acceptance scorer.  Confirmed
// submissions carry no probability; excluded submissions never enter
// the program pool.
type Tier string

const (
	TierConfirmed Tier = "confirmed"
	TierLikely    Tier = "likely"
	TierUncertain Tier = "uncertain"
	TierExcluded  Tier = "excluded"
)

// Score is the acceptance scorer's verdict for one submission.
// Probability is only meaningful when HasProbability is true; a
// confirmed submission is certain and gets no estimate.
type Score struct {
	Tier           Tier    `json:"tier"`
	Probability    float64 `json:"probability,omitempty"`
	HasProbability bool    `json:"hasProbability"`
}

// recommendationWeights maps reviewer recommendations onto acceptance
// weight.  Unknown values fall back to 0.4 (neutral-ish).
var recommendationWeights = map[string]float64{
	model.RecommendStrongAccept:  1.0,
	model.RecommendAccept:        1.0,
	model.RecommendMinorRevision: 0.8,
	model.RecommendMajorRevision: 0.5,
	model.RecommendReject:        0.1,
	model.RecommendStrongReject:  0.1,
}

// ScoreSubmission estimates how likely a submission is to end up in
// the program.  Papers with a final accept decision are confirmed
// outright.  Papers still in the review workflow get a probability in
// [0.05, 0.95]: a heuristic baseline when no review has completed, or
// a blend of the average review score and the average recommendation
// weight once reviews exist.  Everything else is excluded.
func ScoreSubmission(s model.Submission) Score {
	if s.FinalDecision == model.DecisionAccept {
		return Score{Tier: TierConfirmed}
	}

	switch s.Status {
	case model.StatusUnderReview, model.StatusPendingRevision, model.StatusRevised:
	default:
		return Score{Tier: TierExcluded}
	}

	completed := s.CompletedReviews()
	var p float64
	if len(completed) == 0 {
		p = baselineProbability(s)
	} else {
		p = reviewProbability(s, completed)
	}

	return Score{Tier: tierFor(p), Probability: p, HasProbability: true}
}

// baselineProbability scores a paper with no completed reviews from
// surface signals only.  Base 0.4, +0.1 each for a rich keyword set, a
// substantial abstract and the presence of co-authors, capped at 0.7.
func baselineProbability(s model.Submission) float64 {
	p := 0.4
	if len(s.Keywords) > 3 {
		p += 0.1
	}
	if len(s.Abstract) > 200 {
		p += 0.1
	}
	if len(s.CoAuthors) > 0 {
		p += 0.1
	}
	if p > 0.7 {
		p = 0.7
	}
	return p
}

// reviewProbability blends the average numeric score (1–5 mapped onto
// [0,1]) with the average recommendation weight, 60/40.  Revision
// statuses nudge the result: pending revision dampens it, a completed
// revision boosts it.
func reviewProbability(s model.Submission, completed []model.Review) float64 {
	var scoreSum float64
	var scored int
	var recSum float64
	for _, r := range completed {
		if r.Score != nil {
			scoreSum += *r.Score
			scored++
		}
		if w, ok := recommendationWeights[r.Recommendation]; ok {
			recSum += w
		} else {
			recSum += 0.4
		}
	}

	var scoreProb float64
	if scored > 0 {
		avg := scoreSum / float64(scored)
		scoreProb = (avg - 1) / 4 // 1–5 scale onto [0,1]
	}
	recAvg := recSum / float64(len(completed))

	p := 0.6*scoreProb + 0.4*recAvg

	switch s.Status {
	case model.StatusPendingRevision:
		p *= 0.8
		if p < 0.1 {
			p = 0.1
		}
	case model.StatusRevised:
		p *= 1.1
		if p > 0.9 {
			p = 0.9
		}
	}

	return clampProbability(p)
}

func tierFor(p float64) Tier {
	switch {
	case p >= 0.7:
		return TierLikely
	case p >= 0.4:
		return TierUncertain
	default:
		return TierExcluded
	}
}

func clampProbability(p float64) float64 {
	if p < 0.05 {
		return 0.05
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}
