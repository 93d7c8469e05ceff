package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/conference-program/internal/model"
)

// UserRepo provides read access to platform accounts.  The program
// builder only lists users to offer moderator candidates; account
// management lives in the auth service.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ListActive returns all active accounts ordered by name.  Roles are
// stored as a JSON array merged from the legacy role columns by the
// account service's migration.
func (r *UserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, name, email, affiliation, roles, experienced_moderator,
                      willing_moderator, is_active, created_at
               FROM users WHERE is_active = 1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.User
	for rows.Next() {
		var u model.User
		var roles []byte
		var affiliation sql.NullString
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &affiliation, &roles,
			&u.ExperiencedModerator, &u.WillingModerator, &u.IsActive, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		u.Affiliation = affiliation.String
		if len(roles) > 0 {
			if err := json.Unmarshal(roles, &u.Roles); err != nil {
				return nil, fmt.Errorf("decode user %d: %w", u.ID, err)
			}
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
