package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-program/internal/model"
)

// ConferenceRepo provides read access to conferences.  The program
// builder never mutates them; their lifecycle belongs to the
// registration side of the platform.
type ConferenceRepo struct {
	db *sql.DB
}

// NewConferenceRepo constructs a ConferenceRepo with the given DB
// handle.
func NewConferenceRepo(db *sql.DB) *ConferenceRepo {
	return &ConferenceRepo{db: db}
}

// GetByID retrieves a conference by its ID.  It returns
// ErrConferenceNotFound when no row matches.
func (r *ConferenceRepo) GetByID(ctx context.Context, id uint64) (*model.Conference, error) {
	const q = `SELECT id, name, year, starts_on, ends_on, created_at FROM conferences WHERE id = ?`
	var c model.Conference
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Year, &c.StartsOn, &c.EndsOn, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}
	return &c, nil
}
