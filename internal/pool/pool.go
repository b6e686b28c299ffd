// Package pool provides the per-session shuffled, depleting set of items.
package pool

import (
	crand "crypto/rand"
	"math/rand/v2"

	"github.com/poliorcetics/seven-families/internal/catalog"
)

// Shuffler produces a permutation in place. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Pool hands out items in a random order, each at most once.
//
// The draw order is fixed at construction; the pool only ever shrinks.
// A Pool is not safe for concurrent use, it belongs to a single session.
type Pool struct {
	items []catalog.Item
}

// New copies items and shuffles them once. A nil shuffler uses a ChaCha8
// generator seeded from crypto/rand.
func New(items []catalog.Item, shuffler Shuffler) *Pool {
	if shuffler == nil {
		shuffler = newSecureShuffler()
	}

	p := &Pool{items: make([]catalog.Item, len(items))}
	copy(p.items, items)
	shuffler.Shuffle(len(p.items), func(i, j int) {
		p.items[i], p.items[j] = p.items[j], p.items[i]
	})
	return p
}

// FromSelection builds a pool from the items of the selected categories.
// An empty selection yields an empty pool.
func FromSelection(c *catalog.Catalog, ids []catalog.CategoryID, shuffler Shuffler) *Pool {
	return New(c.Items(ids), shuffler)
}

// DrawOne removes and returns the last item of the draw order.
// Returns false when the pool is empty.
func (p *Pool) DrawOne() (catalog.Item, bool) {
	n := len(p.items)
	if n == 0 {
		return catalog.Item{}, false
	}
	item := p.items[n-1]
	p.items[n-1] = catalog.Item{}
	p.items = p.items[:n-1]
	return item, true
}

// IsEmpty returns true when no items remain.
func (p *Pool) IsEmpty() bool {
	return len(p.items) == 0
}

// Len returns the number of items left.
func (p *Pool) Len() int {
	return len(p.items)
}

func newSecureShuffler() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:]) // never fails on supported platforms
	return rand.New(rand.NewChaCha8(seed))
}
