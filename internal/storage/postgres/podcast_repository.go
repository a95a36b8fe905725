package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PodcastRepository struct {
	pool *pgxpool.Pool
}

func NewPodcastRepository(pool *pgxpool.Pool) *PodcastRepository {
	return &PodcastRepository{pool: pool}
}

const podcastColumns = `id, title, host, youtube_url, cover_url, description, published, created_at`

func (r *PodcastRepository) CreatePodcast(ctx context.Context, podcast domain.Podcast) error {
	const stmt = `
INSERT INTO youtube_content (id, title, host, youtube_url, cover_url, description, published, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, stmt,
		podcast.ID, podcast.Title, podcast.Host, podcast.YoutubeURL,
		podcast.CoverURL, podcast.Description, podcast.Published, podcast.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create podcast: %w", err)
	}
	return nil
}

func (r *PodcastRepository) GetPodcast(ctx context.Context, id string) (domain.Podcast, error) {
	const query = `SELECT ` + podcastColumns + ` FROM youtube_content WHERE id = $1`
	var p domain.Podcast
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Host, &p.YoutubeURL, &p.CoverURL, &p.Description, &p.Published, &p.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Podcast{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Podcast{}, domain.ErrPodcastNotFound
		}
		return domain.Podcast{}, fmt.Errorf("get podcast: %w", err)
	}
	return p, nil
}

func (r *PodcastRepository) UpdatePodcast(ctx context.Context, podcast domain.Podcast) error {
	const stmt = `
UPDATE youtube_content
SET title = $2, host = $3, youtube_url = $4, cover_url = $5, description = $6, published = $7
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt,
		podcast.ID, podcast.Title, podcast.Host, podcast.YoutubeURL,
		podcast.CoverURL, podcast.Description, podcast.Published,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update podcast: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPodcastNotFound
	}
	return nil
}

func (r *PodcastRepository) DeletePodcast(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM youtube_content WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete podcast: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPodcastNotFound
	}
	return nil
}

func (r *PodcastRepository) ListPodcasts(ctx context.Context, params app.ListParams) ([]domain.Podcast, int, error) {
	var f filterSet
	f.search(params.Search, "title", "host")
	if published := params.Filter("published"); published != "" {
		f.eq("published", published == "true")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM youtube_content`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count podcasts: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + podcastColumns + ` FROM youtube_content` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []domain.Podcast
	for rows.Next() {
		var p domain.Podcast
		if err := rows.Scan(&p.ID, &p.Title, &p.Host, &p.YoutubeURL, &p.CoverURL, &p.Description, &p.Published, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan podcast: %w", err)
		}
		podcasts = append(podcasts, p)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate podcasts: %w", rows.Err())
	}
	return podcasts, total, nil
}
