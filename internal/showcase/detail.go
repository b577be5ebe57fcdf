package showcase

import "strings"

// MaxBadges is how many technologies the detail panel shows.
const MaxBadges = 3

type LinkKind string

const (
	LinkLive       LinkKind = "live"
	LinkRepository LinkKind = "repository"
)

type Link struct {
	Kind  LinkKind
	Label string
	URL   string
}

// DetailView is the read-only projection of the active project.
type DetailView struct {
	ID       string
	Title    string
	Role     string
	Timeline string
	Badges   []string
	Lines    []string
	Links    []Link
}

// Detail projects the active project into a DetailView. It reports false when
// activeID is not in the catalog, in which case nothing should be drawn.
func Detail(c *Catalog, activeID string) (DetailView, bool) {
	p, ok := c.Lookup(activeID)
	if !ok {
		return DetailView{}, false
	}

	n := min(MaxBadges, len(p.Technologies))
	v := DetailView{
		ID:       p.ID,
		Title:    p.Title,
		Role:     p.Role,
		Timeline: p.Timeline,
		Badges:   append([]string(nil), p.Technologies[:n]...),
		Lines:    append([]string(nil), p.DescriptionLines...),
	}
	if isPublished(p.Links.Live) {
		v.Links = append(v.Links, Link{Kind: LinkLive, Label: "View Live", URL: p.Links.Live})
	}
	if isPublished(p.Links.Repository) {
		v.Links = append(v.Links, Link{Kind: LinkRepository, Label: "View Code", URL: p.Links.Repository})
	}
	return v, true
}

// isPublished treats "" and "#" as a link that has not been published yet.
func isPublished(url string) bool {
	url = strings.TrimSpace(url)
	return url != "" && url != "#"
}
