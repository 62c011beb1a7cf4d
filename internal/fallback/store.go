// Package fallback holds the process-local records served while the
// database is unreachable. Nothing here is persisted; each process has its
// own independent copy.
package fallback

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lumina/backend/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed is the document shape of seed.yaml.
type Seed struct {
	Galleries []*model.Gallery `yaml:"galleries"`
	Bookings  []*model.Booking `yaml:"bookings"`
}

// LoadSeed parses the embedded seed. Bookings without timestamps are
// stamped with now.
func LoadSeed(now time.Time) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(seedYAML, &s); err != nil {
		return nil, fmt.Errorf("fallback: parse seed: %w", err)
	}
	for _, b := range s.Bookings {
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = b.CreatedAt
		}
		if b.ServicesInterested == nil {
			b.ServicesInterested = []string{}
		}
	}
	for _, g := range s.Galleries {
		if g.Images == nil {
			g.Images = []model.GalleryImage{}
		}
		if g.Categories == nil {
			g.Categories = []string{}
		}
	}
	return &s, nil
}

// Store is a mutex-guarded, newest-first list of bookings plus a read-only
// gallery set. All methods return copies.
type Store struct {
	mu        sync.RWMutex
	bookings  []*model.Booking
	galleries []*model.Gallery
	now       func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewSeededStore creates a store holding the embedded illustrative records.
func NewSeededStore() (*Store, error) {
	s := NewStore()
	seed, err := LoadSeed(s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.bookings = seed.Bookings
	s.galleries = seed.Galleries
	sortGalleries(s.galleries)
	return s, nil
}

// SetClock replaces the time source used for updatedAt stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Add prepends a copy of b.
func (s *Store) Add(b *model.Booking) *model.Booking {
	c := b.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append([]*model.Booking{c}, s.bookings...)
	return c.Clone()
}

// List returns bookings matching filter, newest first.
func (s *Store) List(filter model.BookingFilter) []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Booking{}
	for _, b := range s.bookings {
		if filter.Match(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// FindByID returns the booking with id, or nil.
func (s *Store) FindByID(id string) *model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b.Clone()
		}
	}
	return nil
}

// UpdateStatus sets the status of the booking with id and stamps updatedAt.
// It returns nil when no booking matches.
func (s *Store) UpdateStatus(id string, status model.BookingStatus) *model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID == id {
			b.Status = status
			b.UpdatedAt = s.now().UTC()
			return b.Clone()
		}
	}
	return nil
}

// Len returns the number of bookings held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// Galleries returns the seed galleries matching filter, featured first then
// newest first.
func (s *Store) Galleries(filter model.GalleryFilter) []*model.Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Gallery{}
	for _, g := range s.galleries {
		if filter.Match(g) {
			out = append(out, cloneGallery(g))
		}
	}
	return out
}

// GalleryBySlug returns the seed gallery with slug, or nil.
func (s *Store) GalleryBySlug(slug string) *model.Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.galleries {
		if g.Slug == slug {
			return cloneGallery(g)
		}
	}
	return nil
}

func sortGalleries(gs []*model.Gallery) {
	sort.SliceStable(gs, func(i, j int) bool {
		if gs[i].Featured != gs[j].Featured {
			return gs[i].Featured
		}
		return gs[i].CreatedAt.After(gs[j].CreatedAt)
	})
}

func cloneGallery(g *model.Gallery) *model.Gallery {
	c := *g
	c.Images = append([]model.GalleryImage{}, g.Images...)
	c.Categories = append([]string{}, g.Categories...)
	if g.EventDate != nil {
		d := *g.EventDate
		c.EventDate = &d
	}
	return &c
}
