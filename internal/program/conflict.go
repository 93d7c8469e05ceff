package program

import (
	"context"
	"fmt"
	"sort"

	"github.com/iliyamo/conference-program/internal/model"
)

// ConflictEntry describes one session involved in a scheduling
// conflict.
type ConflictEntry struct {
	SessionID     uint64          `json:"sessionId"`
	SessionNumber uint32          `json:"sessionNumber"`
	Title         string          `json:"title"`
	Room          string          `json:"room,omitempty"`
	StartTime     model.TimeOfDay `json:"startTime"`
	EndTime       model.TimeOfDay `json:"endTime"`
}

// Conflict is a set of two or more sessions whose time ranges
// intersect on the same date.
type Conflict struct {
	Date     string          `json:"date"`
	Sessions []ConflictEntry `json:"sessions"`
}

// ConflictDetector finds sessions competing for the same time slot.
type ConflictDetector struct {
	conferences ConferenceStore
	sessions    SessionStore
}

// NewConflictDetector wires the detector to its stores.
func NewConflictDetector(conferences ConferenceStore, sessions SessionStore) *ConflictDetector {
	return &ConflictDetector{conferences: conferences, sessions: sessions}
}

// Detect reports every cluster of sessions with intersecting time
// ranges on the same date.  Overlap is interval intersection, not
// exact triple equality, so sessions sharing an identical
// (date, start, end) tuple are always reported along with partial
// overlaps.  Sessions on different dates never conflict.
func (d *ConflictDetector) Detect(ctx context.Context, conferenceID uint64) ([]Conflict, error) {
	if _, err := d.conferences.GetByID(ctx, conferenceID); err != nil {
		return nil, err
	}
	sessions, err := d.sessions.ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return DetectConflicts(sessions), nil
}

// DetectConflicts clusters the given sessions into overlap groups.  A
// cluster is a maximal run of sessions on one date where each session
// overlaps the union of the sessions before it; clusters of size one
// are dropped.
func DetectConflicts(sessions []model.Session) []Conflict {
	byDate := map[string][]model.Session{}
	for _, s := range sessions {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var conflicts []Conflict
	for _, date := range dates {
		day := byDate[date]
		sort.SliceStable(day, func(i, j int) bool {
			if day[i].StartTime != day[j].StartTime {
				return day[i].StartTime < day[j].StartTime
			}
			return day[i].SessionNumber < day[j].SessionNumber
		})

		var cluster []model.Session
		clusterEnd := model.TimeOfDay(0)
		flush := func() {
			if len(cluster) >= 2 {
				conflicts = append(conflicts, conflictFrom(date, cluster))
			}
			cluster = nil
		}
		for _, s := range day {
			if len(cluster) > 0 && s.StartTime < clusterEnd {
				cluster = append(cluster, s)
				if s.EndTime > clusterEnd {
					clusterEnd = s.EndTime
				}
				continue
			}
			flush()
			cluster = append(cluster, s)
			clusterEnd = s.EndTime
		}
		flush()
	}
	return conflicts
}

func conflictFrom(date string, cluster []model.Session) Conflict {
	c := Conflict{Date: date}
	for _, s := range cluster {
		c.Sessions = append(c.Sessions, ConflictEntry{
			SessionID:     s.ID,
			SessionNumber: s.SessionNumber,
			Title:         s.Title,
			Room:          s.Room,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
		})
	}
	return c
}
