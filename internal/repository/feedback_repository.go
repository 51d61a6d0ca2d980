package repository

import (
	"context"
	"database/sql"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// FeedbackRepo manages persistence for moderated reviews.
type FeedbackRepo struct {
	db *sql.DB
}

// NewFeedbackRepo constructs a FeedbackRepo with the given DB handle.
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Create inserts a feedback entry. Status always starts pending; callers
// never choose it.
func (r *FeedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	const q = `INSERT INTO feedback (movie_id, name, email, rating, comment, status, ip_address, user_agent)
		VALUES (?,?,?,?,?,?,?,?)`
	f.Status = model.FeedbackPending
	res, err := r.db.ExecContext(ctx, q,
		f.MovieID, f.Name, f.Email, f.Rating, f.Comment, f.Status, f.IPAddress, f.UserAgent)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM feedback WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, f.ID).Scan(&f.CreatedAt, &f.UpdatedAt)
}

// ListApproved returns the approved feedback page for one movie, newest
// first, plus the total approved count. Audit fields stay behind.
func (r *FeedbackRepo) ListApproved(ctx context.Context, movieID uint64, page, pageSize int) ([]*model.Feedback, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE movie_id = ? AND status = ?`,
		movieID, model.FeedbackApproved).Scan(&total); err != nil {
		return nil, 0, err
	}
	const q = `SELECT id, movie_id, name, rating, comment, status, created_at, updated_at
		FROM feedback WHERE movie_id = ? AND status = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, movieID, model.FeedbackApproved, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []*model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.MovieID, &f.Name, &f.Rating, &f.Comment,
			&f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &f)
	}
	return out, total, rows.Err()
}

// ListAll returns the moderation queue page, optionally filtered by status,
// with the movie's title and slug attached.
func (r *FeedbackRepo) ListAll(ctx context.Context, status string, page, pageSize int) ([]*model.Feedback, int64, error) {
	cond := "1=1"
	args := []any{}
	if status != "" {
		cond = "f.status = ?"
		args = append(args, status)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback f WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT f.id, f.movie_id, COALESCE(m.title, ''), COALESCE(m.slug, ''),
			f.name, f.email, f.rating, f.comment, f.status, f.ip_address, f.user_agent,
			f.created_at, f.updated_at
		FROM feedback f LEFT JOIN movies m ON m.id = f.movie_id
		WHERE ` + cond + ` ORDER BY f.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []*model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.MovieID, &f.MovieTitle, &f.MovieSlug,
			&f.Name, &f.Email, &f.Rating, &f.Comment, &f.Status, &f.IPAddress, &f.UserAgent,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &f)
	}
	return out, total, rows.Err()
}

// SetStatus moves a feedback entry through moderation and returns the
// updated row. Returns ErrFeedbackNotFound when the id matches nothing.
func (r *FeedbackRepo) SetStatus(ctx context.Context, id uint64, status string) (*model.Feedback, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE feedback SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		// The row may exist with the same status already; confirm.
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM feedback WHERE id = ?`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, ErrFeedbackNotFound
		}
	}
	const sel = `SELECT id, movie_id, name, email, rating, comment, status, created_at, updated_at
		FROM feedback WHERE id = ?`
	var f model.Feedback
	if err := r.db.QueryRowContext(ctx, sel, id).Scan(&f.ID, &f.MovieID, &f.Name, &f.Email,
		&f.Rating, &f.Comment, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes a feedback entry.
func (r *FeedbackRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
