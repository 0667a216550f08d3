package runner

import "github.com/vovakirdan/pulse-runner/internal/core"

// Kind identifies an entity variant.
type Kind int

const (
	KindEnemy Kind = iota
	KindHazard
	KindCollectible
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindHazard:
		return "hazard"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// Entity is a scrolling object occupying one lane.
//
// X is the left edge for enemies and hazards and the centre for
// collectibles. Enemies use Size as their side length, collectibles use it
// as their radius, hazards use Width and Height.
type Entity struct {
	Kind   Kind
	Lane   int
	X      float64
	Size   float64
	Width  float64
	Height float64
}

// Span returns the horizontal extent used for contact checks.
func (e Entity) Span() core.Span {
	switch e.Kind {
	case KindHazard:
		return core.Span{Min: e.X, Max: e.X + e.Width}
	case KindCollectible:
		return core.NewSpan(e.X, e.Size)
	default:
		return core.Span{Min: e.X, Max: e.X + e.Size}
	}
}

// column holds one variant's live entities in spawn order.
// Entities spawn at the same x and share one speed, so the front of the
// column is always the leftmost entity and the first to leave the screen.
type column struct {
	items []Entity
}

func (c *column) push(e Entity) {
	c.items = append(c.items, e)
}

func (c *column) len() int {
	return len(c.items)
}

func (c *column) reset() {
	c.items = c.items[:0]
}

// advance moves every entity left by dx.
func (c *column) advance(dx float64) {
	for i := range c.items {
		c.items[i].X -= dx
	}
}

// pruneFront drops entities from the front while they are left of threshold.
// Returns how many were removed.
func (c *column) pruneFront(threshold float64) int {
	n := 0
	for n < len(c.items) && c.items[n].X < threshold {
		n++
	}
	if n > 0 {
		c.items = c.items[:copy(c.items, c.items[n:])]
	}
	return n
}

// removeIf deletes matching entities in place, keeping the order of the rest.
// Returns how many were removed.
func (c *column) removeIf(match func(Entity) bool) int {
	kept := c.items[:0]
	for _, e := range c.items {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	return removed
}

// snapshot returns an independent copy of the entities.
func (c *column) snapshot() []Entity {
	out := make([]Entity, len(c.items))
	copy(out, c.items)
	return out
}
