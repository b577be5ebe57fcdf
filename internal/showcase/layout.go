package showcase

// Slot is one cell of the tile grid. An empty ProjectID marks a placeholder.
type Slot struct {
	ProjectID string
}

func (s Slot) Empty() bool { return s.ProjectID == "" }

// Layout is the row-major order of grid slots.
type Layout []Slot

// NewLayout builds a layout from project ids, where "" is an empty slot.
func NewLayout(ids ...string) Layout {
	l := make(Layout, len(ids))
	for i, id := range ids {
		l[i] = Slot{ProjectID: id}
	}
	return l
}

// At returns the slot at index i. Out-of-range indexes read as empty.
func (l Layout) At(i int) Slot {
	if i < 0 || i >= len(l) {
		return Slot{}
	}
	return l[i]
}

// Dangling lists slot ids that the catalog does not know about.
func (l Layout) Dangling(c *Catalog) []string {
	var missing []string
	for _, s := range l {
		if !s.Empty() && !c.Has(s.ProjectID) {
			missing = append(missing, s.ProjectID)
		}
	}
	return missing
}
