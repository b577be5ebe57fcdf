// Package showcase holds the project tiles and the detail panel shown in the
// "Projects & Experiments" section of the site.
package showcase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyID     = errors.New("project id is empty")
	ErrDuplicateID = errors.New("duplicate project id")
)

// Links points at the places a project can be visited. Empty values and the
// "#" placeholder are treated as missing.
type Links struct {
	Repository string `yaml:"repository" json:"repository,omitempty"`
	Live       string `yaml:"live" json:"live,omitempty"`
}

// Icon is the cosmetic badge drawn on a tile.
type Icon struct {
	Glyph      string `yaml:"glyph" json:"glyph"`
	Background string `yaml:"background" json:"background"`
	Shadow     string `yaml:"shadow" json:"shadow"`
}

type Project struct {
	ID               string   `yaml:"id" json:"id"`
	Title            string   `yaml:"title" json:"title"`
	ShortDescription string   `yaml:"short" json:"short_description"`
	Role             string   `yaml:"role" json:"role"`
	Timeline         string   `yaml:"timeline" json:"timeline"`
	Technologies     []string `yaml:"tech" json:"technologies"`
	DescriptionLines []string `yaml:"description" json:"description_lines"`
	Links            Links    `yaml:"links" json:"links"`
	Icon             Icon     `yaml:"icon" json:"icon"`
}

// Catalog is the ordered, read-only set of projects.
type Catalog struct {
	projects []Project
	byID     map[string]int
}

// NewCatalog copies projects into a catalog keyed by id.
func NewCatalog(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}
	for _, p := range projects {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("project %q: %w", p.Title, ErrEmptyID)
		}
		if _, ok := c.byID[id]; ok {
			return nil, fmt.Errorf("project %q: %w", id, ErrDuplicateID)
		}
		p.ID = id
		p.Technologies = append([]string(nil), p.Technologies...)
		p.DescriptionLines = append([]string(nil), p.DescriptionLines...)
		c.byID[id] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

// Lookup returns the project with the given id.
func (c *Catalog) Lookup(id string) (Project, bool) {
	if c == nil {
		return Project{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Projects returns the projects in catalog order.
func (c *Catalog) Projects() []Project {
	if c == nil {
		return nil
	}
	return append([]Project(nil), c.projects...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.projects)
}
