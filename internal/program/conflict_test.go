package program

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/conference-program/internal/model"
	"github.com/iliyamo/conference-program/internal/repository"
)

func slot(id uint64, date string, start, end int) model.Session {
	return model.Session{
		ID:            id,
		ConferenceID:  1,
		SessionNumber: uint32(id),
		Title:         "Session",
		Date:          date,
		StartTime:     model.TimeOfDay(start),
		EndTime:       model.TimeOfDay(end),
	}
}

func TestDetectConflictsIdenticalTriple(t *testing.T) {
	sessions := []model.Session{
		slot(1, "2025-04-09", 9*60, 10*60+15),
		slot(2, "2025-04-09", 9*60, 10*60+15),
		slot(3, "2025-04-09", 13*60, 14*60),
	}
	got := DetectConflicts(sessions)
	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(got))
	}
	if len(got[0].Sessions) != 2 {
		t.Fatalf("conflict holds %d sessions, want 2", len(got[0].Sessions))
	}
}

func TestDetectConflictsPartialOverlap(t *testing.T) {
	sessions := []model.Session{
		slot(1, "2025-04-09", 9*60, 10*60),
		slot(2, "2025-04-09", 9*60+30, 11*60),
	}
	got := DetectConflicts(sessions)
	if len(got) != 1 {
		t.Fatal("partially overlapping sessions must be reported")
	}
}

func TestDetectConflictsTouchingBoundariesDoNotConflict(t *testing.T) {
	sessions := []model.Session{
		slot(1, "2025-04-09", 9*60, 10*60),
		slot(2, "2025-04-09", 10*60, 11*60),
	}
	if got := DetectConflicts(sessions); len(got) != 0 {
		t.Fatalf("back-to-back sessions reported as conflict: %+v", got)
	}
}

func TestDetectConflictsDifferentDates(t *testing.T) {
	sessions := []model.Session{
		slot(1, "2025-04-09", 9*60, 10*60),
		slot(2, "2025-04-10", 9*60, 10*60),
	}
	if got := DetectConflicts(sessions); len(got) != 0 {
		t.Fatalf("same times on different dates reported as conflict: %+v", got)
	}
}

func TestDetectConflictsTransitiveCluster(t *testing.T) {
	// 9:00-10:00, 9:30-11:00 and 10:30-11:30 chain into one cluster.
	sessions := []model.Session{
		slot(1, "2025-04-09", 9*60, 10*60),
		slot(2, "2025-04-09", 9*60+30, 11*60),
		slot(3, "2025-04-09", 10*60+30, 11*60+30),
	}
	got := DetectConflicts(sessions)
	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want one chained cluster", len(got))
	}
	if len(got[0].Sessions) != 3 {
		t.Fatalf("cluster size = %d, want 3", len(got[0].Sessions))
	}
}

func TestDetectUnknownConference(t *testing.T) {
	m := newMemStore()
	d := NewConflictDetector(m.conferenceStore(), m.sessionStore())
	_, err := d.Detect(context.Background(), 42)
	if !errors.Is(err, repository.ErrConferenceNotFound) {
		t.Fatalf("err = %v, want ErrConferenceNotFound", err)
	}
}
