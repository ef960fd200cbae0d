// Package article assigns the sequential AC-prefixed identifiers carried by
// every output row.
package article

import (
	"fmt"
)

// Counter reserves blocks of sequential numbers from an external
// continuation source, so numbering can survive across runs.
type Counter interface {
	// Reserve claims count sequential values and returns the first one.
	Reserve(count int) (int, error)
}

// Generator produces identifiers of the form prefix + zero-padded sequence
// (AC00001000). Without a counter, numbering restarts from the configured
// base on every generator, scoping it to a single output run.
type Generator struct {
	prefix  string
	width   int
	next    int
	counter Counter
}

func NewGenerator(prefix string, width, base int) *Generator {
	return &Generator{prefix: prefix, width: width, next: base}
}

// NewPersistentGenerator continues numbering from the external counter
// instead of the per-run base.
func NewPersistentGenerator(prefix string, width int, counter Counter) *Generator {
	return &Generator{prefix: prefix, width: width, counter: counter}
}

// Allocate returns count sequential article numbers in order, with no
// duplicates and no gaps.
func (g *Generator) Allocate(count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	start := g.next
	if g.counter != nil {
		var err error
		start, err = g.counter.Reserve(count)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve article numbers: %w", err)
		}
	} else {
		g.next += count
	}

	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = g.Format(start + i)
	}
	return out, nil
}

// Format renders one sequence value, e.g. Format(1000) -> "AC00001000".
func (g *Generator) Format(n int) string {
	return fmt.Sprintf("%s%0*d", g.prefix, g.width, n)
}
