package basket

import (
	"errors"
	"math"
	"sync"

	"github.com/google/uuid"
)

// ErrLineNotFound is returned for quantity updates and removals against an
// unknown line id.
var ErrLineNotFound = errors.New("basket: line not found")

// Basket is the one shared, mutable resource of the engine. Every state
// transition runs to completion under a single mutex before the next is
// observed, so two rapid add-to-basket dispatches can never race between
// "find matching line" and "increment its quantity". The mutex is never held
// across I/O; every operation is in-memory and bounded.
type Basket struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Basket {
	return &Basket{}
}

// AddInput is a finished configuration ready to commit.
type AddInput struct {
	ProductID string
	UnitPrice float64
	Options   []OptionRef
	Toppings  []ToppingRef
}

// Add reconciles a finished configuration into the basket: a line with the
// same product id and an equal option/topping multiset gets its quantity
// incremented, otherwise a new line is appended with quantity 1. Returns the
// created or merged line.
func (b *Basket) Add(in AddInput) Line {
	b.mu.Lock()
	defer b.mu.Unlock()

	candidate := identityEntries(in.Options, in.Toppings)
	for i := range b.lines {
		line := &b.lines[i]
		if line.ProductID != in.ProductID {
			continue
		}
		if !sameConfiguration(identityEntries(line.Options, line.Toppings), candidate) {
			continue
		}
		line.Quantity++
		line.Subtotal = lineSubtotal(line)
		return *line
	}

	line := Line{
		LineID:    uuid.NewString(),
		ProductID: in.ProductID,
		UnitPrice: in.UnitPrice,
		Quantity:  1,
		Options:   in.Options,
		Toppings:  in.Toppings,
	}
	line.Subtotal = lineSubtotal(&line)
	b.lines = append(b.lines, line)
	return line
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line.
func (b *Basket) UpdateQuantity(lineID string, quantity int) (Line, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].LineID != lineID {
			continue
		}
		if quantity <= 0 {
			removed := b.lines[i]
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			removed.Quantity = 0
			removed.Subtotal = 0
			return removed, nil
		}
		b.lines[i].Quantity = quantity
		b.lines[i].Subtotal = lineSubtotal(&b.lines[i])
		return b.lines[i], nil
	}
	return Line{}, ErrLineNotFound
}

// Remove deletes a line.
func (b *Basket) Remove(lineID string) error {
	_, err := b.UpdateQuantity(lineID, 0)
	return err
}

// Clear empties the basket.
func (b *Basket) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// Snapshot is the canonical basket view consumed by checkout collaborators.
// Total and ItemCount are always recomputed as aggregates over all lines so
// they can never drift from line data.
type Snapshot struct {
	Lines     []Line  `json:"lines"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// Snapshot returns a copy of every line plus recomputed aggregates.
func (b *Basket) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{Lines: make([]Line, len(b.lines))}
	copy(snap.Lines, b.lines)
	for _, line := range snap.Lines {
		snap.Total += line.Subtotal
		snap.ItemCount += line.Quantity
	}
	snap.Total = round2(snap.Total)
	return snap
}

func lineSubtotal(line *Line) float64 {
	perUnit := line.UnitPrice + surchargeSum(line.Options, line.Toppings)
	return round2(perUnit * float64(line.Quantity))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
