package model

import "time"

// GalleryImage is a single CDN-hosted image within a portfolio gallery.
type GalleryImage struct {
	PublicID      string `json:"publicId" yaml:"publicId"`
	URL           string `json:"url" yaml:"url"`
	Width         int    `json:"width" yaml:"width"`
	Height        int    `json:"height" yaml:"height"`
	Alt           string `json:"alt,omitempty" yaml:"alt"`
	DominantColor string `json:"dominantColor,omitempty" yaml:"dominantColor"`
}

// Gallery is a published portfolio story. Slug is the unique key.
type Gallery struct {
	Slug        string         `json:"slug" yaml:"slug"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	HeroImage   GalleryImage   `json:"heroImage" yaml:"heroImage"`
	Images      []GalleryImage `json:"images" yaml:"images"`
	Categories  []string       `json:"categories" yaml:"categories"`
	EventDate   *time.Time     `json:"eventDate,omitempty" yaml:"eventDate"`
	Location    string         `json:"location,omitempty" yaml:"location"`
	Featured    bool           `json:"featured" yaml:"featured"`
	CreatedAt   time.Time      `json:"createdAt,omitempty" yaml:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty" yaml:"updatedAt"`
}

// GalleryFilter narrows a gallery listing.
type GalleryFilter struct {
	FeaturedOnly bool
}

// Match reports whether g passes the filter.
func (f GalleryFilter) Match(g *Gallery) bool {
	return !f.FeaturedOnly || g.Featured
}
