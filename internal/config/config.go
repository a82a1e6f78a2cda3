// Package config loads server settings from the environment and the site's
// copy (hero, phrases, navigation, footer) from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gracepan/portfolio/internal/typing"
)

// Config holds everything main needs to start the server.
type Config struct {
	Port       string
	SiteConfig string
	ContentDir string
	AboutFile  string
	ImagesDir  string
	DBPath     string
	BaseURL    string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	Site *Site
}

// Link is a labelled href.
type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// Timings are the typing animation delays in milliseconds.
type Timings struct {
	TypeDelayMs   int `yaml:"type_delay_ms"`
	HoldFullMs    int `yaml:"hold_full_ms"`
	DeleteDelayMs int `yaml:"delete_delay_ms"`
	HoldEmptyMs   int `yaml:"hold_empty_ms"`
}

// Durations converts t for the animator.
func (t Timings) Durations() typing.Timings {
	return typing.Timings{
		TypeDelay:   time.Duration(t.TypeDelayMs) * time.Millisecond,
		HoldFull:    time.Duration(t.HoldFullMs) * time.Millisecond,
		DeleteDelay: time.Duration(t.DeleteDelayMs) * time.Millisecond,
		HoldEmpty:   time.Duration(t.HoldEmptyMs) * time.Millisecond,
	}
}

// Site is the page copy around the project content.
type Site struct {
	Owner    string   `yaml:"owner"`
	Logo     string   `yaml:"logo"`
	Title    string   `yaml:"title"`
	Greeting string   `yaml:"greeting"`
	Tagline  string   `yaml:"tagline"`
	Phrases  []string `yaml:"phrases"`
	Typing   Timings  `yaml:"typing"`
	Nav      []Link   `yaml:"nav"`
	// HomeCards caps the grid on the home page; the rest are behind "more".
	HomeCards   int      `yaml:"home_cards"`
	FooterLines []string `yaml:"footer_lines"`
	FooterLinks []Link   `yaml:"footer_links"`
}

// DefaultSite returns the copy the site ships with.
func DefaultSite() *Site {
	return &Site{
		Owner:    "GRACE PAN",
		Logo:     "._.",
		Title:    "Grace Pan",
		Greeting: "Hello! I'm Grace, a",
		Tagline:  "I love making functional and aesthetic products that provide simple joys :0",
		Phrases: []string{
			"product design engineer",
			"hobbyist artist <3",
			"mechanical engineer",
			"plush maker",
			"lobster lover",
			"makerspace enthusiast",
			"professional napper zzz",
		},
		Typing: Timings{
			TypeDelayMs:   100,
			HoldFullMs:    2000,
			DeleteDelayMs: 50,
			HoldEmptyMs:   500,
		},
		Nav: []Link{
			{Label: "work", Href: "/#work"},
			{Label: "quickstart", Href: "/#quickstart"},
			{Label: "play", Href: "/#play"},
			{Label: "about", Href: "/#about"},
		},
		HomeCards:   6,
		FooterLines: []string{"© GRACE PAN 2026", "designer + engineer"},
		FooterLinks: []Link{
			{Label: "LINKEDIN", Href: "#"},
			{Label: "EMAIL", Href: "#"},
			{Label: "RESUME", Href: "#"},
		},
	}
}

// LoadSite reads a YAML site file over DefaultSite. A missing file is not
// an error; the defaults are returned.
func LoadSite(path string) (*Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, site.Validate()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return site, site.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("read site config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", path, err)
	}
	return site, site.Validate()
}

// Validate checks that the copy can drive the page.
func (s *Site) Validate() error {
	if len(s.Phrases) == 0 {
		return fmt.Errorf("phrases: at least one phrase is required")
	}
	t := s.Typing
	if t.TypeDelayMs < 0 || t.HoldFullMs < 0 || t.DeleteDelayMs < 0 || t.HoldEmptyMs < 0 {
		return fmt.Errorf("typing: delays must be >= 0")
	}
	if t.TypeDelayMs == 0 || t.DeleteDelayMs == 0 {
		return fmt.Errorf("typing: type_delay_ms and delete_delay_ms must be > 0")
	}
	if s.HomeCards < 0 {
		return fmt.Errorf("home_cards must be >= 0")
	}
	for i, l := range append(append([]Link(nil), s.Nav...), s.FooterLinks...) {
		if strings.TrimSpace(l.Label) == "" {
			return fmt.Errorf("link[%d]: label is required", i)
		}
	}
	return nil
}

// Load reads the environment, then the site file it points at.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		SiteConfig:        getenv("SITE_CONFIG", "site.yaml"),
		ContentDir:        getenv("CONTENT_DIR", "content/projects"),
		AboutFile:         getenv("ABOUT_FILE", "content/about.md"),
		ImagesDir:         getenv("IMAGES_DIR", "./images"),
		DBPath:            getenv("DB_PATH", "portfolio.db"),
		BaseURL:           strings.TrimSuffix(os.Getenv("BASE_URL"), "/"),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	site, err := LoadSite(cfg.SiteConfig)
	if err != nil {
		return nil, err
	}
	cfg.Site = site
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
