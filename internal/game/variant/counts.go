package variant

import (
	"slices"
	"sync"

	"github.com/palemoky/hanabi-deduction/internal/game/card"
)

// CountTable maps (suit, rank) to a number of physical copies.
// It is a value wrapping a shared slice: use Clone for an independent table.
type CountTable struct {
	stride int
	cells  []int
}

// NewCountTable builds the full deck composition of v.
func NewCountTable(v *Variant) CountTable {
	stride := int(v.MaxRank()) + 1
	t := CountTable{stride: stride, cells: make([]int, len(v.Suits)*stride)}
	for _, id := range v.Universe() {
		n, err := v.NumCopies(id)
		if err != nil {
			// Universe only yields defined identities.
			panic(err)
		}
		t.cells[t.index(id)] = n
	}
	return t
}

func (t CountTable) index(id card.Identity) int {
	return id.Suit*t.stride + int(id.Rank)
}

// At returns the count for id.
func (t CountTable) At(id card.Identity) int {
	return t.cells[t.index(id)]
}

// Dec removes one copy of id and returns what is left. The result may go negative.
func (t CountTable) Dec(id card.Identity) int {
	i := t.index(id)
	t.cells[i]--
	return t.cells[i]
}

// Inc puts one copy of id back.
func (t CountTable) Inc(id card.Identity) {
	t.cells[t.index(id)]++
}

// Take tentatively consumes one copy of id and, if a copy was available,
// returns fn's result. The copy is always put back before Take returns,
// including when fn panics.
func (t CountTable) Take(id card.Identity, fn func() bool) bool {
	i := t.index(id)
	t.cells[i]--
	defer func() { t.cells[i]++ }()
	if t.cells[i] < 0 {
		return false
	}
	return fn()
}

// Clone returns an independent copy.
func (t CountTable) Clone() CountTable {
	return CountTable{stride: t.stride, cells: slices.Clone(t.cells)}
}

// Equal reports whether both tables hold identical counts.
func (t CountTable) Equal(o CountTable) bool {
	return t.stride == o.stride && slices.Equal(t.cells, o.cells)
}

// CountCache remembers the count table of the most recently requested variant.
// It holds a single slot: asking for a different variant replaces it.
// Safe for concurrent use.
type CountCache struct {
	mu    sync.Mutex
	name  string
	table CountTable
	valid bool
}

// NewCountCache 创建空缓存
func NewCountCache() *CountCache {
	return &CountCache{}
}

// Get returns a fresh, caller-owned copy of v's count table.
func (c *CountCache) Get(v *Variant) CountTable {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.name != v.Name {
		c.table = NewCountTable(v)
		c.name = v.Name
		c.valid = true
	}
	return c.table.Clone()
}

// cached returns the name of the variant currently held, if any.
func (c *CountCache) cached() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name, c.valid
}
