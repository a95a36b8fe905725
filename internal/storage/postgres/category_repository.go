package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, sort_order, active, created_at`

func (r *CategoryRepository) CreateCategory(ctx context.Context, category domain.Category) error {
	const stmt = `
INSERT INTO categories (id, name, sort_order, active, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, stmt, category.ID, category.Name, category.SortOrder, category.Active, category.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrCategoryNameTaken
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.SortOrder, &c.Active, &c.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Category{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	const stmt = `UPDATE categories SET name = $2, sort_order = $3, active = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, category.ID, category.Name, category.SortOrder, category.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrCategoryNameTaken
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// ListCategories orders by sort_order then name; the admin curates the
// order explicitly.
func (r *CategoryRepository) ListCategories(ctx context.Context, params app.ListParams) ([]domain.Category, int, error) {
	var f filterSet
	f.search(params.Search, "name")
	if active := params.Filter("active"); active != "" {
		f.eq("active", active == "true")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + categoryColumns + ` FROM categories` + f.where() + ` ORDER BY sort_order ASC, name ASC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder, &c.Active, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", rows.Err())
	}
	return categories, total, nil
}
