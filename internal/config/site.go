package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSiteYAML []byte

// Site is the public-facing studio profile.
type Site struct {
	Name            string        `yaml:"name" json:"name"`
	Title           string        `yaml:"title" json:"title"`
	Description     string        `yaml:"description" json:"description"`
	URL             string        `yaml:"url" json:"url"`
	ContactEmail    string        `yaml:"contactEmail" json:"contactEmail"`
	StudioPhone     string        `yaml:"studioPhone" json:"studioPhone"`
	WhatsAppNumber  string        `yaml:"whatsappNumber" json:"whatsappNumber"`
	Address         Address       `yaml:"address" json:"address"`
	HeroTagline     string        `yaml:"heroTagline" json:"heroTagline"`
	HeroDescription string        `yaml:"heroDescription" json:"heroDescription"`
	ServicesCopy    string        `yaml:"servicesCopy" json:"servicesCopy"`
	Services        []Service     `yaml:"services" json:"services"`
	Socials         []Link        `yaml:"socials" json:"socials"`
	Testimonials    []Testimonial `yaml:"testimonials" json:"testimonials"`
}

type Address struct {
	Street     string `yaml:"street" json:"street"`
	City       string `yaml:"city" json:"city"`
	Region     string `yaml:"region" json:"region"`
	PostalCode string `yaml:"postalCode" json:"postalCode"`
	Country    string `yaml:"country" json:"country"`
}

type Service struct {
	Name    string `yaml:"name" json:"name"`
	Summary string `yaml:"summary" json:"summary"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

type Testimonial struct {
	Quote    string `yaml:"quote" json:"quote"`
	Name     string `yaml:"name" json:"name"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

// LoadSite reads the site profile from path, or the embedded default when
// path is empty. ${VAR} references are expanded from the environment first.
func LoadSite(path string) (*Site, error) {
	data := defaultSiteYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read site file: %w", err)
		}
		data = b
	}
	return ParseSite(data)
}

// ParseSite decodes and validates a site profile document.
func ParseSite(data []byte) (*Site, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	var site Site
	if err := yaml.Unmarshal(expanded, &site); err != nil {
		return nil, fmt.Errorf("config: parse site file: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("site name is required"))
	}
	if !strings.HasPrefix(s.WhatsAppNumber, "+") {
		errs = append(errs, fmt.Errorf("site whatsappNumber %q must be in E.164 format", s.WhatsAppNumber))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
