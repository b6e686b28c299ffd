package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/bits"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ErrInvalid is wrapped by every validation error returned by Parse.
var ErrInvalid = errors.New("invalid catalog")

type yamlCatalog struct {
	Categories []yamlCategory `yaml:"categories"`
}

type yamlCategory struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Bit   uint8      `yaml:"bit"`
	Clip  string     `yaml:"clip"`
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Clip string `yaml:"clip"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded reference catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	if len(raw.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalid)
	}

	c := &Catalog{
		categories: make([]Category, 0, len(raw.Categories)),
		byID:       make(map[CategoryID]int, len(raw.Categories)),
	}
	var usedBits uint8

	for _, rc := range raw.Categories {
		cat, err := buildCategory(rc)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalid, cat.ID)
		}
		if usedBits&cat.Bit != 0 {
			return nil, fmt.Errorf("%w: category %q reuses bit %d", ErrInvalid, cat.ID, cat.Bit)
		}
		usedBits |= cat.Bit
		c.byID[cat.ID] = len(c.categories)
		c.categories = append(c.categories, cat)
	}

	return c, nil
}

func buildCategory(rc yamlCategory) (Category, error) {
	if rc.ID == "" {
		return Category{}, fmt.Errorf("%w: category without id", ErrInvalid)
	}
	if bits.OnesCount8(rc.Bit) != 1 {
		return Category{}, fmt.Errorf("%w: category %q: bit must be a single non-zero bit, got %d", ErrInvalid, rc.ID, rc.Bit)
	}
	if rc.Clip == "" {
		return Category{}, fmt.Errorf("%w: category %q has no clip", ErrInvalid, rc.ID)
	}
	if len(rc.Items) == 0 {
		return Category{}, fmt.Errorf("%w: category %q has no items", ErrInvalid, rc.ID)
	}

	name := rc.Name
	if name == "" {
		name = rc.ID
	}

	cat := Category{
		ID:    CategoryID(rc.ID),
		Name:  name,
		Bit:   rc.Bit,
		Clip:  Clip(rc.Clip),
		Items: make([]Item, 0, len(rc.Items)),
	}

	seen := make(map[string]bool, len(rc.Items))
	for _, ri := range rc.Items {
		if ri.ID == "" {
			return Category{}, fmt.Errorf("%w: category %q: item without id", ErrInvalid, rc.ID)
		}
		if seen[ri.ID] {
			return Category{}, fmt.Errorf("%w: category %q: duplicate item %q", ErrInvalid, rc.ID, ri.ID)
		}
		if ri.Clip == "" {
			return Category{}, fmt.Errorf("%w: item %s/%s has no clip", ErrInvalid, rc.ID, ri.ID)
		}
		seen[ri.ID] = true

		itemName := ri.Name
		if itemName == "" {
			itemName = ri.ID
		}
		cat.Items = append(cat.Items, Item{
			ID:           ri.ID,
			Category:     cat.ID,
			Name:         itemName,
			CategoryClip: cat.Clip,
			ItemClip:     Clip(ri.Clip),
		})
	}

	return cat, nil
}
