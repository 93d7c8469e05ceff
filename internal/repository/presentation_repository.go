// Presentation persistence.  Presentations are only ever created or
// deleted inside a session transaction; this file provides the read
// side plus the tx insert helper used by SessionRepo.

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/conference-program/internal/model"
)

const presentationColumns = `id, submission_id, session_id, conference_id, title,
       presenters, abstract, discipline, keywords, order_index, created_at`

// PresentationRepo provides read access to assignment snapshots.
type PresentationRepo struct {
	db *sql.DB
}

// NewPresentationRepo constructs a PresentationRepo with the given DB
// handle.
func NewPresentationRepo(db *sql.DB) *PresentationRepo {
	return &PresentationRepo{db: db}
}

// ListBySession returns a session's presentations in program order.
func (r *PresentationRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.Presentation, error) {
	q := `SELECT ` + presentationColumns + ` FROM presentations WHERE session_id = ? ORDER BY order_index ASC, id ASC`
	return r.list(ctx, q, sessionID)
}

// ListByConference returns every presentation of a conference.  The
// aggregator uses this to compute the unassigned pool.
func (r *PresentationRepo) ListByConference(ctx context.Context, conferenceID uint64) ([]model.Presentation, error) {
	q := `SELECT ` + presentationColumns + ` FROM presentations WHERE conference_id = ? ORDER BY session_id ASC, order_index ASC`
	return r.list(ctx, q, conferenceID)
}

func (r *PresentationRepo) list(ctx context.Context, q string, args ...any) ([]model.Presentation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Presentation
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanPresentation(row rowScanner) (*model.Presentation, error) {
	var p model.Presentation
	var presenters, keywords []byte
	if err := row.Scan(
		&p.ID, &p.SubmissionID, &p.SessionID, &p.ConferenceID, &p.Title,
		&presenters, &p.Abstract, &p.Discipline, &keywords, &p.OrderIndex, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(presenters) > 0 {
		if err := json.Unmarshal(presenters, &p.Presenters); err != nil {
			return nil, fmt.Errorf("decode presentation %d: %w", p.ID, err)
		}
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &p.Keywords); err != nil {
			return nil, fmt.Errorf("decode presentation %d: %w", p.ID, err)
		}
	}
	return &p, nil
}

// insertPresentationsTx inserts snapshot rows inside the caller's
// transaction.  The unique (submission_id, session_id) index enforces
// the one-presentation-per-pair invariant at the database level; the
// one-active-presentation-per-submission invariant is checked here
// (row-locked) since no single-column unique index can express it.
func insertPresentationsTx(ctx context.Context, tx *sql.Tx, presentations []model.Presentation) error {
	const q = `INSERT INTO presentations
        (submission_id, session_id, conference_id, title, presenters, abstract,
         discipline, keywords, order_index)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range presentations {
		p := &presentations[i]
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM presentations WHERE submission_id = ? LIMIT 1 FOR UPDATE`,
			p.SubmissionID,
		).Scan(&one)
		if err == nil {
			return ErrSubmissionScheduled
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		presenters, err := json.Marshal(p.Presenters)
		if err != nil {
			return err
		}
		keywords, err := json.Marshal(p.Keywords)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, q,
			p.SubmissionID, p.SessionID, p.ConferenceID, p.Title, presenters,
			p.Abstract, p.Discipline, keywords, p.OrderIndex,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		p.ID = uint64(id)
	}
	return nil
}
