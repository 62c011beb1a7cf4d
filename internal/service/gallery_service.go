package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lumina/backend/internal/fallback"
	"github.com/lumina/backend/internal/metrics"
	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/internal/repository"
	"github.com/lumina/backend/pkg/cloudinary"
)

// galleryImageWidth is the delivery width for images stored without a URL.
const galleryImageWidth = 1600

// ImageURLBuilder turns a CDN public id into a delivery URL.
type ImageURLBuilder interface {
	URL(publicID string, t cloudinary.Transform) string
}

// GalleryList is a portfolio listing, flagged when served from the seed.
type GalleryList struct {
	Galleries []*model.Gallery
	Fallback  bool
}

// GalleryResult is a single gallery, flagged when served from the seed.
type GalleryResult struct {
	Gallery  *model.Gallery
	Fallback bool
}

// GalleryService serves portfolio galleries.
type GalleryService interface {
	List(ctx context.Context, filter model.GalleryFilter) (*GalleryList, error)
	// Get returns repository.ErrNotFound when no gallery has slug.
	Get(ctx context.Context, slug string) (*GalleryResult, error)
}

type galleryServiceImpl struct {
	repo         repository.GalleryRepository
	store        *fallback.Store
	urls         ImageURLBuilder
	metrics      *metrics.Metrics
	fallbackOnly bool
}

// NewGalleryService creates a GalleryService. Images stored with only a
// public id get their URL from urls, which may be nil. With fallbackOnly set
// the repository is never queried and seed galleries are served unflagged.
func NewGalleryService(repo repository.GalleryRepository, store *fallback.Store, urls ImageURLBuilder, m *metrics.Metrics, fallbackOnly bool) GalleryService {
	return &galleryServiceImpl{repo: repo, store: store, urls: urls, metrics: m, fallbackOnly: fallbackOnly}
}

func (s *galleryServiceImpl) resolveImage(img *model.GalleryImage) {
	if img.URL != "" || img.PublicID == "" || s.urls == nil {
		return
	}
	img.URL = s.urls.URL(img.PublicID, cloudinary.Transform{Width: galleryImageWidth})
}

// resolve fills missing image URLs in place. Callers pass galleries they own.
func (s *galleryServiceImpl) resolve(galleries ...*model.Gallery) {
	for _, g := range galleries {
		s.resolveImage(&g.HeroImage)
		for i := range g.Images {
			s.resolveImage(&g.Images[i])
		}
	}
}

func (s *galleryServiceImpl) list(galleries []*model.Gallery, degraded bool) *GalleryList {
	s.resolve(galleries...)
	return &GalleryList{Galleries: galleries, Fallback: degraded}
}

func (s *galleryServiceImpl) one(g *model.Gallery, degraded bool) *GalleryResult {
	s.resolve(g)
	return &GalleryResult{Gallery: g, Fallback: degraded}
}

func (s *galleryServiceImpl) List(ctx context.Context, filter model.GalleryFilter) (*GalleryList, error) {
	if s.fallbackOnly {
		return s.list(s.store.Galleries(filter), false), nil
	}

	galleries, err := s.repo.List(ctx, filter)
	if err == nil {
		return s.list(galleries, false), nil
	}

	slog.WarnContext(ctx, "gallery list failed, serving fallback galleries", "error", err)
	s.metrics.FallbackTotal.WithLabelValues("gallery_list").Inc()
	return s.list(s.store.Galleries(filter), true), nil
}

func (s *galleryServiceImpl) Get(ctx context.Context, slug string) (*GalleryResult, error) {
	if s.fallbackOnly {
		g := s.store.GalleryBySlug(slug)
		if g == nil {
			return nil, repository.ErrNotFound
		}
		return s.one(g, false), nil
	}

	g, err := s.repo.FindBySlug(ctx, slug)
	if err == nil {
		return s.one(g, false), nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	slog.WarnContext(ctx, "gallery lookup failed, serving fallback galleries", "slug", slug, "error", err)
	s.metrics.FallbackTotal.WithLabelValues("gallery_get").Inc()
	g = s.store.GalleryBySlug(slug)
	if g == nil {
		return nil, repository.ErrNotFound
	}
	return s.one(g, true), nil
}
