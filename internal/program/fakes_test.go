package program

import (
	"context"
	"sort"

	"github.com/iliyamo/conference-program/internal/model"
	"github.com/iliyamo/conference-program/internal/repository"
)

// memStore is an in-memory implementation of every program store
// interface.  It mirrors the repository semantics the services rely
// on: transactional create/update/delete behave atomically, session
// numbers are max+1 per conference and updates are compare-and-swap on
// the version token.
type memStore struct {
	conferences   map[uint64]model.Conference
	submissions   map[uint64]*model.Submission
	sessions      map[uint64]*model.Session
	presentations map[uint64]*model.Presentation
	users         []model.User

	nextSessionID      uint64
	nextPresentationID uint64
}

func newMemStore() *memStore {
	return &memStore{
		conferences:   map[uint64]model.Conference{},
		submissions:   map[uint64]*model.Submission{},
		sessions:      map[uint64]*model.Session{},
		presentations: map[uint64]*model.Presentation{},
	}
}

func (m *memStore) addConference(c model.Conference) {
	m.conferences[c.ID] = c
}

func (m *memStore) addSubmission(s model.Submission) {
	sub := s
	m.submissions[s.ID] = &sub
}

func (m *memStore) GetByID(ctx context.Context, id uint64) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, repository.ErrSubmissionNotFound
}

func (m *memStore) ListByConference(ctx context.Context, conferenceID uint64) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range m.submissions {
		if s.ConferenceID == conferenceID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListAccepted(ctx context.Context, conferenceID uint64) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range m.submissions {
		if s.ConferenceID != conferenceID {
			continue
		}
		if s.Status == model.StatusAccepted || s.Status == model.StatusScheduled {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// conferenceStore view

type memConferences struct{ m *memStore }

func (c memConferences) GetByID(ctx context.Context, id uint64) (*model.Conference, error) {
	if conf, ok := c.m.conferences[id]; ok {
		return &conf, nil
	}
	return nil, repository.ErrConferenceNotFound
}

func (m *memStore) conferenceStore() ConferenceStore { return memConferences{m} }

// sessionStore view

type memSessions struct{ m *memStore }

func (m *memStore) sessionStore() SessionStore { return memSessions{m} }

func (s memSessions) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	if sess, ok := s.m.sessions[id]; ok {
		copy := *sess
		return &copy, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (s memSessions) ListByConference(ctx context.Context, conferenceID uint64) ([]model.Session, error) {
	var out []model.Session
	for _, sess := range s.m.sessions {
		if sess.ConferenceID == conferenceID {
			out = append(out, *sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionNumber < out[j].SessionNumber })
	return out, nil
}

func (s memSessions) CreateWithAssignments(ctx context.Context, sess *model.Session, assignments []model.Presentation) error {
	var max uint32
	for _, existing := range s.m.sessions {
		if existing.ConferenceID == sess.ConferenceID && existing.SessionNumber > max {
			max = existing.SessionNumber
		}
	}
	s.m.nextSessionID++
	sess.ID = s.m.nextSessionID
	sess.SessionNumber = max + 1
	sess.Version = 1
	stored := *sess
	s.m.sessions[sess.ID] = &stored

	for _, p := range assignments {
		p.SessionID = sess.ID
		if err := s.m.insertPresentation(p); err != nil {
			return err
		}
	}
	return nil
}

func (s memSessions) UpdateWithAssignments(ctx context.Context, sess *model.Session, expectedVersion uint32, add []model.Presentation, removeSubmissionIDs []uint64) error {
	stored, ok := s.m.sessions[sess.ID]
	if !ok {
		return repository.ErrSessionNotFound
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	updated := *sess
	updated.Version = expectedVersion + 1
	s.m.sessions[sess.ID] = &updated
	sess.Version = updated.Version

	for _, p := range add {
		p.SessionID = sess.ID
		if err := s.m.insertPresentation(p); err != nil {
			return err
		}
	}
	for _, subID := range removeSubmissionIDs {
		for id, p := range s.m.presentations {
			if p.SessionID == sess.ID && p.SubmissionID == subID {
				delete(s.m.presentations, id)
			}
		}
		if sub, ok := s.m.submissions[subID]; ok {
			sub.Status = model.StatusAccepted
		}
	}
	return nil
}

func (s memSessions) DeleteCascade(ctx context.Context, id uint64) ([]uint64, error) {
	if _, ok := s.m.sessions[id]; !ok {
		return nil, repository.ErrSessionNotFound
	}
	var affected []uint64
	for pid, p := range s.m.presentations {
		if p.SessionID == id {
			affected = append(affected, p.SubmissionID)
			delete(s.m.presentations, pid)
		}
	}
	for _, subID := range affected {
		if sub, ok := s.m.submissions[subID]; ok {
			sub.Status = model.StatusAccepted
		}
	}
	delete(s.m.sessions, id)
	sort.Slice(affected, func(i, j int) bool { return affected[i] < affected[j] })
	return affected, nil
}

func (m *memStore) insertPresentation(p model.Presentation) error {
	for _, existing := range m.presentations {
		if existing.SubmissionID == p.SubmissionID {
			return repository.ErrSubmissionScheduled
		}
	}
	m.nextPresentationID++
	p.ID = m.nextPresentationID
	stored := p
	m.presentations[p.ID] = &stored
	if sub, ok := m.submissions[p.SubmissionID]; ok {
		sub.Status = model.StatusScheduled
	}
	return nil
}

// presentationStore view

type memPresentations struct{ m *memStore }

func (m *memStore) presentationStore() PresentationStore { return memPresentations{m} }

func (p memPresentations) ListBySession(ctx context.Context, sessionID uint64) ([]model.Presentation, error) {
	var out []model.Presentation
	for _, pr := range p.m.presentations {
		if pr.SessionID == sessionID {
			out = append(out, *pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (p memPresentations) ListByConference(ctx context.Context, conferenceID uint64) ([]model.Presentation, error) {
	var out []model.Presentation
	for _, pr := range p.m.presentations {
		if pr.ConferenceID == conferenceID {
			out = append(out, *pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// userStore view

type memUsers struct{ m *memStore }

func (m *memStore) userStore() UserStore { return memUsers{m} }

func (u memUsers) ListActive(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, user := range u.m.users {
		if user.IsActive {
			out = append(out, user)
		}
	}
	return out, nil
}
