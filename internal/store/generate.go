package store

import (
	"math/rand"
	"time"
)

const (
	idRange    = 10
	nameLength = 5
	maxAge     = 15
	alphanum   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Categories lists the values a generated record's category is drawn from.
var Categories = []string{"sedan", "suv"}

// Engines lists the engine labels a generated record is drawn from.
var Engines = []string{"I4", "V6", "V8", "EV"}

// Generator synthesizes random records. The random source and clock are
// injected so callers can make generation deterministic.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator drawing from rng and stamping records
// with the current time.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// WithClock returns a copy of g that stamps records using now.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	cp := *g
	cp.now = now
	return &cp
}

// Next returns a new random record.
func (g *Generator) Next() Record {
	return Record{
		ID:        g.rng.Intn(idRange),
		Name:      g.alphanumeric(nameLength),
		Model:     g.alphanumeric(nameLength),
		Engine:    Engines[g.rng.Intn(len(Engines))],
		Category:  Categories[g.rng.Intn(len(Categories))],
		Age:       g.rng.Intn(maxAge) + 1,
		CreatedAt: g.now().UTC(),
	}
}

func (g *Generator) alphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanum[g.rng.Intn(len(alphanum))]
	}
	return string(b)
}

// IsCategory reports whether c is one of the generator's categories.
func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
