package service

import (
	"context"

	"github.com/lumina/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockBookingRepository
// ---------------------------------------------------------------------------

type mockBookingRepository struct {
	createFunc       func(ctx context.Context, b *model.Booking) error
	listFunc         func(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFunc func(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return nil
}

func (m *mockBookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// mockGalleryRepository
// ---------------------------------------------------------------------------

type mockGalleryRepository struct {
	listFunc       func(ctx context.Context, filter model.GalleryFilter) ([]*model.Gallery, error)
	findBySlugFunc func(ctx context.Context, slug string) (*model.Gallery, error)
}

func (m *mockGalleryRepository) List(ctx context.Context, filter model.GalleryFilter) ([]*model.Gallery, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*model.Gallery{}, nil
}

func (m *mockGalleryRepository) FindBySlug(ctx context.Context, slug string) (*model.Gallery, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockGalleryRepository) Upsert(ctx context.Context, g *model.Gallery) error {
	return nil
}

// ---------------------------------------------------------------------------
// mockNotifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	bookingFunc func(ctx context.Context, b *model.Booking) error
	contactFunc func(ctx context.Context, c *model.ContactSubmission) error
	bookings    []*model.Booking
	contacts    []*model.ContactSubmission
}

func (m *mockNotifier) BookingReceived(ctx context.Context, b *model.Booking) error {
	m.bookings = append(m.bookings, b)
	if m.bookingFunc != nil {
		return m.bookingFunc(ctx, b)
	}
	return nil
}

func (m *mockNotifier) ContactReceived(ctx context.Context, c *model.ContactSubmission) error {
	m.contacts = append(m.contacts, c)
	if m.contactFunc != nil {
		return m.contactFunc(ctx, c)
	}
	return nil
}
