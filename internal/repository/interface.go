package repository

import (
	"context"

	"github.com/lumina/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// BookingRepository is the durable persistence interface for bookings.
// Connectivity and query failures are returned unchanged; callers decide
// whether to fall back.
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
}

// GalleryRepository is the durable persistence interface for portfolio galleries.
type GalleryRepository interface {
	List(ctx context.Context, filter model.GalleryFilter) ([]*model.Gallery, error)
	FindBySlug(ctx context.Context, slug string) (*model.Gallery, error)
	Upsert(ctx context.Context, g *model.Gallery) error
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
