// Package content loads the copy shown on the site: the hero, the about
// section, the contact details and the project showcase.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/subahan00/portfolio/internal/showcase"
)

//go:embed site.yaml
var siteYAML []byte

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Social struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Profile struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name"`
	Greeting    string   `yaml:"greeting"`
	Headline    string   `yaml:"headline"`
	Tagline     string   `yaml:"tagline"`
	Summary     string   `yaml:"summary"`
	Focus       string   `yaml:"focus"`
	Stats       []Stat   `yaml:"stats"`
	Socials     []Social `yaml:"socials"`
}

type FocusArea struct {
	Label   string `yaml:"label"`
	Percent int    `yaml:"percent"`
}

type About struct {
	Heading    string      `yaml:"heading"`
	Subheading string      `yaml:"subheading"`
	Title      string      `yaml:"title"`
	Bio        string      `yaml:"bio"`
	Highlights []Stat      `yaml:"highlights"`
	Role       string      `yaml:"role"`
	TechStack  []string    `yaml:"tech_stack"`
	FocusAreas []FocusArea `yaml:"focus_areas"`
}

type Contact struct {
	Email        string   `yaml:"email"`
	Phone        string   `yaml:"phone"`
	Location     string   `yaml:"location"`
	ResponseTime string   `yaml:"response_time"`
	Offerings    []string `yaml:"offerings"`
}

type showcaseDoc struct {
	Default  string             `yaml:"default"`
	Grid     []string           `yaml:"grid"`
	Projects []showcase.Project `yaml:"projects"`
}

type document struct {
	Profile  Profile     `yaml:"profile"`
	About    About       `yaml:"about"`
	Contact  Contact     `yaml:"contact"`
	Showcase showcaseDoc `yaml:"showcase"`
}

// Site is everything the pages render, built once at startup.
type Site struct {
	Profile Profile
	About   About
	Contact Contact

	Catalog        *showcase.Catalog
	Layout         showcase.Layout
	DefaultProject string
}

// Load parses the embedded site content.
func Load() (*Site, error) {
	return Parse(siteYAML)
}

// Parse builds a Site from YAML. The default project must exist in the catalog;
// grid slots naming unknown projects are kept and render as placeholders.
func Parse(data []byte) (*Site, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}

	catalog, err := showcase.NewCatalog(doc.Showcase.Projects)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if _, err := showcase.NewSelection(catalog, doc.Showcase.Default); err != nil {
		return nil, fmt.Errorf("default selection: %w", err)
	}

	return &Site{
		Profile:        doc.Profile,
		About:          doc.About,
		Contact:        doc.Contact,
		Catalog:        catalog,
		Layout:         showcase.NewLayout(doc.Showcase.Grid...),
		DefaultProject: doc.Showcase.Default,
	}, nil
}

// Selection returns the selection a fresh visitor starts with.
func (s *Site) Selection() showcase.Selection {
	sel, _ := showcase.NewSelection(s.Catalog, s.DefaultProject)
	return sel
}
