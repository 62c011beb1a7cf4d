package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lumina/backend/internal/model"
)

// PgGalleryRepository is the PostgreSQL implementation of GalleryRepository.
// Images are stored as JSONB documents.
type PgGalleryRepository struct {
	db *Connector
}

// NewPgGalleryRepository creates a PgGalleryRepository backed by the given connector.
func NewPgGalleryRepository(db *Connector) *PgGalleryRepository {
	return &PgGalleryRepository{db: db}
}

var _ GalleryRepository = (*PgGalleryRepository)(nil)

const galleryColumns = `slug, title, description, hero_image, images, categories, event_date,
	COALESCE(location, ''), featured, created_at, updated_at`

func scanGallery(row rowScanner) (*model.Gallery, error) {
	var g model.Gallery
	if err := row.Scan(&g.Slug, &g.Title, &g.Description, &g.HeroImage, &g.Images, &g.Categories,
		&g.EventDate, &g.Location, &g.Featured, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if g.Images == nil {
		g.Images = []model.GalleryImage{}
	}
	if g.Categories == nil {
		g.Categories = []string{}
	}
	return &g, nil
}

// List returns galleries featured first, then newest first.
func (r *PgGalleryRepository) List(ctx context.Context, filter model.GalleryFilter) ([]*model.Gallery, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + galleryColumns + ` FROM galleries`
	if filter.FeaturedOnly {
		query += ` WHERE featured`
	}
	query += ` ORDER BY featured DESC, created_at DESC`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	galleries := []*model.Gallery{}
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, err
		}
		galleries = append(galleries, g)
	}
	return galleries, rows.Err()
}

// FindBySlug returns ErrNotFound when no gallery has the given slug.
func (r *PgGalleryRepository) FindBySlug(ctx context.Context, slug string) (*model.Gallery, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	g, err := scanGallery(pool.QueryRow(ctx,
		`SELECT `+galleryColumns+` FROM galleries WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// Upsert inserts g or replaces the gallery with the same slug.
func (r *PgGalleryRepository) Upsert(ctx context.Context, g *model.Gallery) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	images := g.Images
	if images == nil {
		images = []model.GalleryImage{}
	}
	categories := g.Categories
	if categories == nil {
		categories = []string{}
	}
	return pool.QueryRow(ctx,
		`INSERT INTO galleries (slug, title, description, hero_image, images, categories,
		                        event_date, location, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		 ON CONFLICT (slug) DO UPDATE SET
		   title = EXCLUDED.title,
		   description = EXCLUDED.description,
		   hero_image = EXCLUDED.hero_image,
		   images = EXCLUDED.images,
		   categories = EXCLUDED.categories,
		   event_date = EXCLUDED.event_date,
		   location = EXCLUDED.location,
		   featured = EXCLUDED.featured,
		   updated_at = NOW()
		 RETURNING created_at, updated_at`,
		g.Slug, g.Title, g.Description, g.HeroImage, images, categories,
		g.EventDate, g.Location, g.Featured,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
}
