// Submission persistence.  Submissions keep their nested author,
// review and availability sub-records in JSON columns; the repository
// is the only place that marshals them.

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/conference-program/internal/model"
)

// submissionColumns is the shared select list for submission scans.
const submissionColumns = `id, conference_id, title, abstract, keywords, discipline, status,
       final_decision, corresponding_author, co_authors, reviews, availability,
       created_at, updated_at`

// SubmissionRepo manages persistence for submissions.
type SubmissionRepo struct {
	db *sql.DB
}

// NewSubmissionRepo constructs a SubmissionRepo with the given DB handle.
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// GetByID retrieves a submission by its ID.  It returns
// ErrSubmissionNotFound when there is no matching row.
func (r *SubmissionRepo) GetByID(ctx context.Context, id uint64) (*model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ?`
	s, err := scanSubmission(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByConference returns every submission of a conference ordered by
// creation time.  When none exist it returns an empty slice and nil
// error.
func (r *SubmissionRepo) ListByConference(ctx context.Context, conferenceID uint64) ([]model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions WHERE conference_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, q, conferenceID)
}

// ListAccepted returns the conference's accepted pool: submissions
// whose status is accepted or scheduled.  This is the pool the
// grouping engine partitions.
func (r *SubmissionRepo) ListAccepted(ctx context.Context, conferenceID uint64) ([]model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions
          WHERE conference_id = ? AND status IN (?, ?)
          ORDER BY created_at ASC, id ASC`
	return r.list(ctx, q, conferenceID, model.StatusAccepted, model.StatusScheduled)
}

func (r *SubmissionRepo) list(ctx context.Context, q string, args ...any) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
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

// rowScanner covers *sql.Row and *sql.Rows so one scan helper serves
// both single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSubmission decodes one submission row including its JSON
// sub-records.
func scanSubmission(row rowScanner) (*model.Submission, error) {
	var s model.Submission
	var keywords, corresponding, coAuthors, reviews, availability []byte
	var finalDecision sql.NullString
	if err := row.Scan(
		&s.ID, &s.ConferenceID, &s.Title, &s.Abstract, &keywords, &s.Discipline, &s.Status,
		&finalDecision, &corresponding, &coAuthors, &reviews, &availability,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.FinalDecision = finalDecision.String
	for _, col := range []struct {
		raw  []byte
		dest any
	}{
		{keywords, &s.Keywords},
		{corresponding, &s.CorrespondingAuthor},
		{coAuthors, &s.CoAuthors},
		{reviews, &s.Reviews},
		{availability, &s.Availability},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, fmt.Errorf("decode submission %d: %w", s.ID, err)
		}
	}
	return &s, nil
}

// setStatusTx updates the status of the given submissions inside the
// caller's transaction.  It is used by the session repository when
// assigning and unassigning papers so the status flip commits or rolls
// back together with the presentation rows.
func setStatusTx(ctx context.Context, tx *sql.Tx, ids []uint64, status string) error {
	const q = `UPDATE submissions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	for _, id := range ids {
		// RowsAffected is not checked: MySQL reports zero when the
		// status already holds the target value, which is legitimate
		// here (e.g. re-resetting an accepted paper).
		if _, err := tx.ExecContext(ctx, q, status, id); err != nil {
			return err
		}
	}
	return nil
}
