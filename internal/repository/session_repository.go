// Session persistence.  Session mutations that touch presentations and
// submission statuses run inside a single transaction so the program
// can never end up with a scheduled paper that has no presentation, or
// the reverse.

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/conference-program/internal/model"
)

const sessionColumns = `id, conference_id, session_number, title, category, description,
       session_date, start_min, end_min, room, chair, moderators, version,
       created_at, updated_at`

// SessionRepo manages persistence for sessions and their presentation
// assignments.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetByID retrieves a session by its ID without expanding its
// presentations.  It returns ErrSessionNotFound when no row matches.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByConference returns all sessions of a conference ordered by
// session number ascending.
func (r *SessionRepo) ListByConference(ctx context.Context, conferenceID uint64) ([]model.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = ? ORDER BY session_number ASC`
	rows, err := r.db.QueryContext(ctx, q, conferenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateWithAssignments inserts the session and its presentation
// snapshots in one transaction.  The session number is computed inside
// the transaction (max existing number + 1, the row locked for the
// duration) so two concurrent creates cannot share a number.  Assigned
// submissions are marked scheduled.  On success the session's ID,
// SessionNumber, Version and timestamps are populated.
func (r *SessionRepo) CreateWithAssignments(ctx context.Context, s *model.Session, assignments []model.Presentation) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// Next sequential number for the conference; FOR UPDATE serializes
	// concurrent creates on the same conference.
	var next uint32
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(session_number), 0) + 1 FROM sessions WHERE conference_id = ? FOR UPDATE`,
		s.ConferenceID,
	).Scan(&next)
	if err != nil {
		return err
	}
	s.SessionNumber = next

	moderators, err := json.Marshal(s.Moderators)
	if err != nil {
		return err
	}
	const ins = `INSERT INTO sessions
        (conference_id, session_number, title, category, description, session_date,
         start_min, end_min, room, chair, moderators, version)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`
	res, err := tx.ExecContext(ctx, ins,
		s.ConferenceID, s.SessionNumber, s.Title, s.Category, s.Description, s.Date,
		s.StartTime.Minutes(), s.EndTime.Minutes(), s.Room, s.Chair, moderators,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Version = 1

	for i := range assignments {
		assignments[i].SessionID = s.ID
	}
	if err = insertPresentationsTx(ctx, tx, assignments); err != nil {
		return err
	}
	if err = setStatusTx(ctx, tx, submissionIDs(assignments), model.StatusScheduled); err != nil {
		return err
	}

	// Reload DB-default timestamps.
	sel := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	fresh, err := scanSessionTx(ctx, tx, sel, s.ID)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// UpdateWithAssignments applies the session's fields and assignment
// changes in one transaction.  The UPDATE is a compare-and-swap on the
// version column; when the caller's version is stale the transaction
// aborts with ErrVersionConflict so no concurrent edit is silently
// dropped.  Added presentations mark their submissions scheduled,
// removed ones reset theirs to accepted.
func (r *SessionRepo) UpdateWithAssignments(ctx context.Context, s *model.Session, expectedVersion uint32, add []model.Presentation, removeSubmissionIDs []uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	moderators, err := json.Marshal(s.Moderators)
	if err != nil {
		return err
	}
	const upd = `UPDATE sessions
        SET title = ?, category = ?, description = ?, session_date = ?,
            start_min = ?, end_min = ?, room = ?, chair = ?, moderators = ?,
            version = version + 1, updated_at = CURRENT_TIMESTAMP
        WHERE id = ? AND version = ?`
	res, err := tx.ExecContext(ctx, upd,
		s.Title, s.Category, s.Description, s.Date,
		s.StartTime.Minutes(), s.EndTime.Minutes(), s.Room, s.Chair, moderators,
		s.ID, expectedVersion,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing session from a stale version token.
		var one int
		scanErr := tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, s.ID).Scan(&one)
		if errors.Is(scanErr, sql.ErrNoRows) {
			err = ErrSessionNotFound
			return err
		}
		if scanErr != nil {
			err = scanErr
			return err
		}
		err = ErrVersionConflict
		return err
	}

	for i := range add {
		add[i].SessionID = s.ID
	}
	if err = insertPresentationsTx(ctx, tx, add); err != nil {
		return err
	}
	if err = setStatusTx(ctx, tx, submissionIDs(add), model.StatusScheduled); err != nil {
		return err
	}

	for _, submissionID := range removeSubmissionIDs {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM presentations WHERE session_id = ? AND submission_id = ?`,
			s.ID, submissionID,
		); err != nil {
			return err
		}
	}
	if err = setStatusTx(ctx, tx, removeSubmissionIDs, model.StatusAccepted); err != nil {
		return err
	}

	sel := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	fresh, err := scanSessionTx(ctx, tx, sel, s.ID)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// DeleteCascade removes a session, all of its presentations and resets
// every affected submission to accepted, all in one transaction.  It
// returns the IDs of the submissions that were reset, and
// ErrSessionNotFound when the session does not exist.
func (r *SessionRepo) DeleteCascade(ctx context.Context, id uint64) (affected []uint64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSessionNotFound
		}
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `SELECT submission_id FROM presentations WHERE session_id = ?`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var subID uint64
		if err = rows.Scan(&subID); err != nil {
			rows.Close()
			return nil, err
		}
		affected = append(affected, subID)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if _, err = tx.ExecContext(ctx, `DELETE FROM presentations WHERE session_id = ?`, id); err != nil {
		return nil, err
	}
	if err = setStatusTx(ctx, tx, affected, model.StatusAccepted); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return affected, nil
}

// scanSession decodes one session row.
func scanSession(row rowScanner) (*model.Session, error) {
	var s model.Session
	var startMin, endMin int
	var moderators []byte
	if err := row.Scan(
		&s.ID, &s.ConferenceID, &s.SessionNumber, &s.Title, &s.Category, &s.Description,
		&s.Date, &startMin, &endMin, &s.Room, &s.Chair, &moderators, &s.Version,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.StartTime = model.TimeOfDay(startMin)
	s.EndTime = model.TimeOfDay(endMin)
	if len(moderators) > 0 {
		if err := json.Unmarshal(moderators, &s.Moderators); err != nil {
			return nil, fmt.Errorf("decode session %d: %w", s.ID, err)
		}
	}
	return &s, nil
}

func scanSessionTx(ctx context.Context, tx *sql.Tx, q string, id uint64) (*model.Session, error) {
	return scanSession(tx.QueryRowContext(ctx, q, id))
}

func submissionIDs(presentations []model.Presentation) []uint64 {
	ids := make([]uint64, 0, len(presentations))
	for _, p := range presentations {
		ids = append(ids, p.SubmissionID)
	}
	return ids
}
