package showcase

// Tile is the render model for one grid slot.
type Tile struct {
	Index   int
	Empty   bool
	Active  bool
	Project Project
}

// Tiles renders every slot in layout order. Slots whose id is missing from
// the catalog come back as empty placeholders.
func Tiles(l Layout, c *Catalog, activeID string) []Tile {
	tiles := make([]Tile, len(l))
	for i, slot := range l {
		tiles[i] = Tile{Index: i, Empty: true}
		if slot.Empty() {
			continue
		}
		p, ok := c.Lookup(slot.ProjectID)
		if !ok {
			continue
		}
		tiles[i] = Tile{
			Index:   i,
			Project: p,
			Active:  p.ID == activeID,
		}
	}
	return tiles
}
