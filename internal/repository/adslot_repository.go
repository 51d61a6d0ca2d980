package repository

import (
	"context"
	"database/sql"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// AdSlotRepo manages persistence for ad placements.
type AdSlotRepo struct {
	db *sql.DB
}

// NewAdSlotRepo constructs an AdSlotRepo with the given DB handle.
func NewAdSlotRepo(db *sql.DB) *AdSlotRepo {
	return &AdSlotRepo{db: db}
}

const adSlotCols = `id, name, position, ad_code, is_active, width, height, sort_order, created_at, updated_at`

func scanAdSlot(scan func(dest ...any) error) (*model.AdSlot, error) {
	var a model.AdSlot
	err := scan(&a.ID, &a.Name, &a.Position, &a.AdCode, &a.IsActive,
		&a.Dimensions.Width, &a.Dimensions.Height, &a.Order, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an ad slot. Duplicate names map to ErrAdSlotExists.
func (r *AdSlotRepo) Create(ctx context.Context, a *model.AdSlot) error {
	const q = `INSERT INTO ad_slots (name, position, ad_code, is_active, width, height, sort_order)
		VALUES (?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Position, a.AdCode, a.IsActive,
		a.Dimensions.Width, a.Dimensions.Height, a.Order)
	if err != nil {
		if isDuplicate(err) {
			return ErrAdSlotExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM ad_slots WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// Update rewrites every editable column.
func (r *AdSlotRepo) Update(ctx context.Context, a *model.AdSlot) error {
	const q = `UPDATE ad_slots SET name=?, position=?, ad_code=?, is_active=?, width=?, height=?, sort_order=?
		WHERE id=?`
	_, err := r.db.ExecContext(ctx, q, a.Name, a.Position, a.AdCode, a.IsActive,
		a.Dimensions.Width, a.Dimensions.Height, a.Order, a.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrAdSlotExists
		}
		return err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+adSlotCols+` FROM ad_slots WHERE id = ?`, a.ID)
	got, err := scanAdSlot(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrAdSlotNotFound
		}
		return err
	}
	*a = *got
	return nil
}

// Delete removes an ad slot.
func (r *AdSlotRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ad_slots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAdSlotNotFound
	}
	return nil
}

// ListAll returns every slot for the back office, sorted by order.
func (r *AdSlotRepo) ListAll(ctx context.Context) ([]*model.AdSlot, error) {
	return r.list(ctx, `SELECT `+adSlotCols+` FROM ad_slots ORDER BY sort_order ASC`)
}

// ListActive returns active slots for public rendering, sorted by order and
// optionally filtered by position.
func (r *AdSlotRepo) ListActive(ctx context.Context, position string) ([]*model.AdSlot, error) {
	q := `SELECT ` + adSlotCols + ` FROM ad_slots WHERE is_active = 1`
	args := []any{}
	if position != "" {
		q += ` AND position = ?`
		args = append(args, position)
	}
	q += ` ORDER BY sort_order ASC`
	return r.list(ctx, q, args...)
}

func (r *AdSlotRepo) list(ctx context.Context, q string, args ...any) ([]*model.AdSlot, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.AdSlot{}
	for rows.Next() {
		a, err := scanAdSlot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
