package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ReferenceData(t *testing.T) {
	c := Default()

	require.Equal(t, 7, c.Len())
	for _, cat := range c.Categories() {
		assert.Len(t, cat.Items, 6, "category %s", cat.ID)
		for _, item := range cat.Items {
			assert.Equal(t, cat.ID, item.Category)
			assert.Equal(t, cat.Clip, item.CategoryClip)
			assert.NotEmpty(t, item.ItemClip)
		}
	}

	fruits, ok := c.Category("fruits")
	require.True(t, ok)
	assert.Equal(t, "Fruits", fruits.Name)
	assert.Equal(t, uint8(2), fruits.Bit)
	assert.Equal(t, Clip("fruits/0-famille.mp3"), fruits.Clip)
	assert.Equal(t, Clip("fruits/pomme.mp3"), fruits.Items[0].ItemClip)
}

func TestItems(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		ids  []CategoryID
		want int
	}{
		{"empty selection", nil, 0},
		{"one family", []CategoryID{"fruits"}, 6},
		{"two families", []CategoryID{"fruits", "hygiene"}, 12},
		{"unknown ids skipped", []CategoryID{"fruits", "nope"}, 6},
		{"all", c.IDs(), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, c.Items(tt.ids), tt.want)
		})
	}
}

func TestItem_Key(t *testing.T) {
	item := Item{ID: "pomme", Category: "fruits"}
	assert.Equal(t, "fruits/pomme", item.Key())
}

func TestNormalize(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		ids  []CategoryID
		want []CategoryID
	}{
		{"empty falls back to all", nil, c.IDs()},
		{"only unknown falls back to all", []CategoryID{"bogus"}, c.IDs()},
		{"dedup and catalog order", []CategoryID{"taillages", "fruits", "taillages"}, []CategoryID{"fruits", "taillages"}},
		{"unknown dropped", []CategoryID{"hygiene", "bogus"}, []CategoryID{"hygiene"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Normalize(tt.ids))
		})
	}
}

func TestMask_RoundTrip(t *testing.T) {
	c := Default()

	ids := []CategoryID{"mallette", "hygiene", "taillages"}
	mask := c.Mask(ids)
	assert.Equal(t, uint8(0b0100_0101), mask)
	assert.Equal(t, ids, c.FromMask(mask))
}

func TestFromMask_InvalidFallsBackToAll(t *testing.T) {
	c := Default()

	assert.Equal(t, c.IDs(), c.FromMask(0))
	assert.Equal(t, c.IDs(), c.FromMask(0b1000_0000))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no categories", "categories: []"},
		{"missing id", `
categories:
  - {name: X, bit: 1, clip: x.mp3, items: [{id: a, clip: a.mp3}]}`},
		{"bit not single", `
categories:
  - {id: x, bit: 3, clip: x.mp3, items: [{id: a, clip: a.mp3}]}`},
		{"bit zero", `
categories:
  - {id: x, bit: 0, clip: x.mp3, items: [{id: a, clip: a.mp3}]}`},
		{"duplicate bit", `
categories:
  - {id: x, bit: 1, clip: x.mp3, items: [{id: a, clip: a.mp3}]}
  - {id: y, bit: 1, clip: y.mp3, items: [{id: a, clip: a.mp3}]}`},
		{"duplicate category", `
categories:
  - {id: x, bit: 1, clip: x.mp3, items: [{id: a, clip: a.mp3}]}
  - {id: x, bit: 2, clip: y.mp3, items: [{id: a, clip: a.mp3}]}`},
		{"no items", `
categories:
  - {id: x, bit: 1, clip: x.mp3, items: []}`},
		{"duplicate item", `
categories:
  - {id: x, bit: 1, clip: x.mp3, items: [{id: a, clip: a.mp3}, {id: a, clip: b.mp3}]}`},
		{"item without clip", `
categories:
  - {id: x, bit: 1, clip: x.mp3, items: [{id: a}]}`},
		{"category without clip", `
categories:
  - {id: x, bit: 1, items: [{id: a, clip: a.mp3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("categories: [unclosed"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestParse_NamesDefaultToIDs(t *testing.T) {
	c, err := Parse([]byte(`
categories:
  - {id: x, bit: 4, clip: x/0.mp3, items: [{id: a, clip: x/a.mp3}]}`))
	require.NoError(t, err)

	cat, ok := c.Category("x")
	require.True(t, ok)
	assert.Equal(t, "x", cat.Name)
	assert.Equal(t, "a", cat.Items[0].Name)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
categories:
  - id: legumes
    name: Légumes
    bit: 1
    clip: legumes/0-famille.mp3
    items:
      - {id: carotte, name: Carotte, clip: legumes/carotte.mp3}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []CategoryID{"legumes"}, c.IDs())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
