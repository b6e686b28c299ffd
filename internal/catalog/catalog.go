// Package catalog holds the static set of flashcard families and their items.
//
// A catalog is configuration data: it is loaded once, validated, and never
// mutated afterwards. Every item carries two clips, the family clip shared
// by all items of its category and the clip naming the item itself.
package catalog

// CategoryID identifies a family in the catalog.
type CategoryID string

// Clip is the path of an audio file, relative to the assets directory.
type Clip string

// Item is one drawable flashcard entry.
type Item struct {
	ID           string
	Category     CategoryID
	Name         string
	CategoryClip Clip
	ItemClip     Clip
}

// Key returns an identifier unique across the whole catalog.
func (i Item) Key() string {
	return string(i.Category) + "/" + i.ID
}

// Category is a named group of items.
type Category struct {
	ID    CategoryID
	Name  string
	Bit   uint8 // single bit used in selection masks
	Clip  Clip
	Items []Item
}

// Catalog is an ordered, validated set of categories.
type Catalog struct {
	categories []Category
	byID       map[CategoryID]int
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns the category with the given id.
func (c *Catalog) Category(id CategoryID) (Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// IDs returns every category id in catalog order.
func (c *Catalog) IDs() []CategoryID {
	ids := make([]CategoryID, len(c.categories))
	for i, cat := range c.categories {
		ids[i] = cat.ID
	}
	return ids
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Items concatenates the items of the given categories in the given order.
// Unknown ids are skipped. An empty selection yields no items.
func (c *Catalog) Items(ids []CategoryID) []Item {
	var items []Item
	for _, id := range ids {
		cat, ok := c.Category(id)
		if !ok {
			continue
		}
		items = append(items, cat.Items...)
	}
	return items
}

// Normalize drops unknown and duplicate ids and returns the rest in catalog
// order. When nothing valid remains, every category is selected.
func (c *Catalog) Normalize(ids []CategoryID) []CategoryID {
	want := make(map[CategoryID]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.byID[id]; ok {
			want[id] = true
		}
	}
	if len(want) == 0 {
		return c.IDs()
	}

	out := make([]CategoryID, 0, len(want))
	for _, cat := range c.categories {
		if want[cat.ID] {
			out = append(out, cat.ID)
		}
	}
	return out
}

// Mask encodes a selection as a bitmask. Unknown ids are ignored.
func (c *Catalog) Mask(ids []CategoryID) uint8 {
	var mask uint8
	for _, id := range ids {
		if cat, ok := c.Category(id); ok {
			mask |= cat.Bit
		}
	}
	return mask
}

// FromMask decodes a bitmask into a selection. A mask without any known
// bit selects every category.
func (c *Catalog) FromMask(mask uint8) []CategoryID {
	var ids []CategoryID
	for _, cat := range c.categories {
		if mask&cat.Bit != 0 {
			ids = append(ids, cat.ID)
		}
	}
	if len(ids) == 0 {
		return c.IDs()
	}
	return ids
}
