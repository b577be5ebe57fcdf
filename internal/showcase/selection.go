package showcase

import (
	"errors"
	"fmt"
)

var ErrUnknownDefault = errors.New("default project is not in the catalog")

// Selection is a snapshot of which project the detail panel shows. Values are
// immutable; Select and Click return the next snapshot.
type Selection struct {
	activeID string
}

// NewSelection starts a selection at defaultID, which must be in the catalog.
func NewSelection(c *Catalog, defaultID string) (Selection, error) {
	if !c.Has(defaultID) {
		return Selection{}, fmt.Errorf("%q: %w", defaultID, ErrUnknownDefault)
	}
	return Selection{activeID: defaultID}, nil
}

func (s Selection) ActiveID() string { return s.activeID }

// Select makes id active if the catalog has it. Unknown ids leave s unchanged.
func (s Selection) Select(c *Catalog, id string) Selection {
	if !c.Has(id) {
		return s
	}
	return Selection{activeID: id}
}

// Click applies a click on grid slot i. Empty, dangling and out-of-range slots
// are inert.
func (s Selection) Click(c *Catalog, l Layout, i int) Selection {
	slot := l.At(i)
	if slot.Empty() {
		return s
	}
	return s.Select(c, slot.ProjectID)
}
