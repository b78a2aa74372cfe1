package random

import (
	"math/rand"
)

// Source abstracts the random operations used by map generation so runs can be
// reproduced from a seed and tests can pin every draw.
type Source interface {
	Intn(n int) int
	Int63() int64
	Shuffle(n int, swap func(i, j int))
	Seed() int64
}

// Generator implements Source using math/rand.
type Generator struct {
	rand *rand.Rand
	seed int64
}

// NewGenerator creates a new random generator with the given seed.
func NewGenerator(seed int64) Source {
	source := rand.NewSource(seed)
	return &Generator{
		rand: rand.New(source),
		seed: seed,
	}
}

func (r *Generator) Intn(n int) int {
	return r.rand.Intn(n)
}

func (r *Generator) Int63() int64 {
	return r.rand.Int63()
}

func (r *Generator) Shuffle(n int, swap func(i, j int)) {
	r.rand.Shuffle(n, swap)
}

// Seed returns the seed the generator was created with.
func (r *Generator) Seed() int64 {
	return r.seed
}
