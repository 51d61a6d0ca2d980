package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// CategoryRepo manages persistence for categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the given DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categoryCols = `id, name, slug, description, sort_order, created_at, updated_at`

func scanCategory(scan func(dest ...any) error) (*model.Category, error) {
	var c model.Category
	err := scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category. Duplicate name or slug maps to
// ErrCategoryExists via the MySQL duplicate-key error.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const q = `INSERT INTO categories (name, slug, description, sort_order) VALUES (?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Slug, c.Description, c.Order)
	if err != nil {
		if isDuplicate(err) {
			return ErrCategoryExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM categories WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Update rewrites name, slug, description and order.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	const q = `UPDATE categories SET name=?, slug=?, description=?, sort_order=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Slug, c.Description, c.Order, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrCategoryExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either missing or unchanged; distinguish with a lookup.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	const sel = `SELECT updated_at FROM categories WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.UpdatedAt)
}

// Delete removes a category, but only when no movie references it: the
// count-then-block referential guard is enforced here, not by the database.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE category_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return &CategoryInUseError{Count: n}
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// GetByID returns a category or ErrCategoryNotFound.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetBySlug returns a category by its exact slug or ErrCategoryNotFound.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE slug = ?`, slug)
	c, err := scanCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// FindByID implements the upsert service's CategoryStore contract: it
// returns (nil, nil) when the id matches nothing.
func (r *CategoryRepo) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	c, err := r.GetByID(ctx, id)
	if err == ErrCategoryNotFound {
		return nil, nil
	}
	return c, err
}

// FindByKey resolves a free-text category reference: case-insensitive match
// on slug first, then on display name. Returns (nil, nil) when neither
// matches. Bulk import depends on this path.
func (r *CategoryRepo) FindByKey(ctx context.Context, key string) (*model.Category, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	const q = `SELECT ` + categoryCols + ` FROM categories
		WHERE LOWER(slug) = ? OR LOWER(name) = ?
		ORDER BY CASE WHEN LOWER(slug) = ? THEN 0 ELSE 1 END LIMIT 1`
	row := r.db.QueryRowContext(ctx, q, key, key, key)
	c, err := scanCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// ListWithCounts returns all categories ordered for display, each with the
// number of movies referencing it.
func (r *CategoryRepo) ListWithCounts(ctx context.Context) ([]*model.Category, error) {
	const q = `SELECT c.id, c.name, c.slug, c.description, c.sort_order, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM movies m WHERE m.category_id = c.id) AS movie_count
		FROM categories c
		ORDER BY c.sort_order ASC, c.name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Order,
			&c.CreatedAt, &c.UpdatedAt, &c.MovieCount); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// isDuplicate detects MySQL error 1062 (duplicate key).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
