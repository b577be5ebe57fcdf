package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subahan00/portfolio/internal/showcase"
)

func TestLoad(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Subahan Mulla", site.Profile.Name)
	assert.Equal(t, "subahanmulla007@gmail.com", site.Contact.Email)
	assert.Len(t, site.Layout, 12)
	assert.Empty(t, site.Layout.Dangling(site.Catalog))
	assert.Equal(t, 4, site.Catalog.Len())
}

func TestShowcaseBrowsing(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	t.Run("initial render", func(t *testing.T) {
		sel := site.Selection()
		assert.Equal(t, "official90", sel.ActiveID())

		v, ok := showcase.Detail(site.Catalog, sel.ActiveID())
		require.True(t, ok)
		assert.Equal(t, "Official_90", v.Title)
		assert.Equal(t, []string{"React", "Node.js", "MongoDB"}, v.Badges)
	})

	t.Run("click leetcode", func(t *testing.T) {
		sel := site.Selection().Click(site.Catalog, site.Layout, 2)
		assert.Equal(t, "leetcode", sel.ActiveID())

		v, ok := showcase.Detail(site.Catalog, sel.ActiveID())
		require.True(t, ok)
		assert.Equal(t, "Problem solving", v.Role)
		for _, l := range v.Links {
			assert.NotEqual(t, showcase.LinkLive, l.Kind)
		}
	})

	t.Run("click empty slot at position 4", func(t *testing.T) {
		prior := site.Selection().Click(site.Catalog, site.Layout, 1)
		assert.Equal(t, prior, prior.Click(site.Catalog, site.Layout, 3))
	})
}

func TestParse(t *testing.T) {
	t.Run("unknown default", func(t *testing.T) {
		_, err := Parse([]byte(`
showcase:
  default: missing
  projects:
    - id: a
      title: A
`))
		assert.ErrorIs(t, err, showcase.ErrUnknownDefault)
	})

	t.Run("duplicate project", func(t *testing.T) {
		_, err := Parse([]byte(`
showcase:
  default: a
  projects:
    - id: a
    - id: a
`))
		assert.ErrorIs(t, err, showcase.ErrDuplicateID)
	})

	t.Run("dangling grid slot is kept", func(t *testing.T) {
		site, err := Parse([]byte(`
showcase:
  default: a
  grid: [a, ghost, ""]
  projects:
    - id: a
      title: A
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"ghost"}, site.Layout.Dangling(site.Catalog))

		tiles := showcase.Tiles(site.Layout, site.Catalog, "a")
		assert.True(t, tiles[1].Empty)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("showcase: [unterminated"))
		assert.Error(t, err)
	})
}
