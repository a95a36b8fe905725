package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedRepository struct {
	pool *pgxpool.Pool
}

func NewFeedRepository(pool *pgxpool.Pool) *FeedRepository {
	return &FeedRepository{pool: pool}
}

const feedColumns = `id, title, body, image_url, author_id, active, created_at`

func (r *FeedRepository) CreateFeed(ctx context.Context, feed domain.Feed) error {
	const stmt = `
INSERT INTO feeds (id, title, body, image_url, author_id, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, stmt,
		feed.ID, feed.Title, feed.Body, feed.ImageURL, feed.AuthorID, feed.Active, feed.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("create feed: %w", err)
	}
	return nil
}

func (r *FeedRepository) GetFeed(ctx context.Context, id string) (domain.Feed, error) {
	const query = `SELECT ` + feedColumns + ` FROM feeds WHERE id = $1`
	var fd domain.Feed
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&fd.ID, &fd.Title, &fd.Body, &fd.ImageURL, &fd.AuthorID, &fd.Active, &fd.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Feed{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Feed{}, domain.ErrFeedNotFound
		}
		return domain.Feed{}, fmt.Errorf("get feed: %w", err)
	}
	return fd, nil
}

func (r *FeedRepository) UpdateFeed(ctx context.Context, feed domain.Feed) error {
	const stmt = `
UPDATE feeds
SET title = $2, body = $3, image_url = $4, author_id = $5, active = $6
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, feed.ID, feed.Title, feed.Body, feed.ImageURL, feed.AuthorID, feed.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update feed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFeedNotFound
	}
	return nil
}

func (r *FeedRepository) DeleteFeed(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feeds WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete feed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFeedNotFound
	}
	return nil
}

func (r *FeedRepository) ListFeeds(ctx context.Context, params app.ListParams) ([]domain.Feed, int, error) {
	var f filterSet
	f.search(params.Search, "title", "body")
	if active := params.Filter("active"); active != "" {
		f.eq("active", active == "true")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feeds`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feeds: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + feedColumns + ` FROM feeds` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feeds: %w", err)
	}
	defer rows.Close()

	var feeds []domain.Feed
	for rows.Next() {
		var fd domain.Feed
		if err := rows.Scan(&fd.ID, &fd.Title, &fd.Body, &fd.ImageURL, &fd.AuthorID, &fd.Active, &fd.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan feed: %w", err)
		}
		feeds = append(feeds, fd)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate feeds: %w", rows.Err())
	}
	return feeds, total, nil
}
