// Package rng provides a seedable dice.Roller and the selection helpers the
// synthesizer builds on. Every helper draws through a dice.Roller so a
// seeded roller makes whole synthesis runs reproducible.
package rng

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// SeededRoller is a dice.Roller backed by a PCG source
type SeededRoller struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeeded returns a roller whose sequence is fixed by seed
func NewSeeded(seed int64) *SeededRoller {
	return &SeededRoller{rnd: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// NewRoller returns a seeded roller when seed is set, else one seeded from the clock
func NewRoller(seed *int64) *SeededRoller {
	if seed != nil {
		return NewSeeded(*seed)
	}
	return NewSeeded(time.Now().UnixNano())
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Intn returns a value in [0, n)
func Intn(roller dice.Roller, n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot draw from an empty range")
	}
	if n == 1 {
		return 0, nil
	}
	v, err := roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll")
	}
	return v - 1, nil
}

// Between returns a value in [lo, hi]
func Between(roller dice.Roller, lo, hi int) (int, error) {
	if hi < lo {
		lo, hi = hi, lo
	}
	v, err := Intn(roller, hi-lo+1)
	if err != nil {
		return 0, err
	}
	return lo + v, nil
}

// Pick returns one element chosen uniformly
func Pick[T any](roller dice.Roller, items []T) (T, error) {
	var zero T
	i, err := Intn(roller, len(items))
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// Weighted picks an element with probability proportional to its weight.
// Non-positive weights are never picked unless every weight is non-positive,
// in which case the pick is uniform.
func Weighted[T any](roller dice.Roller, items []T, weight func(T) float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.InvalidArgument("cannot pick from an empty set")
	}
	total := 0.0
	for _, it := range items {
		if w := weight(it); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Pick(roller, items)
	}

	// resolution of 1/10000 of the total weight is plenty for table weights
	const steps = 10000
	v, err := Intn(roller, steps)
	if err != nil {
		return zero, err
	}
	target := total * float64(v) / steps
	acc := 0.0
	for _, it := range items {
		w := weight(it)
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return it, nil
		}
	}
	for i := len(items) - 1; i >= 0; i-- {
		if weight(items[i]) > 0 {
			return items[i], nil
		}
	}
	return zero, errors.Internal("weighted pick fell through")
}

// Sample returns up to n distinct elements in draw order
func Sample[T any](roller dice.Roller, items []T, n int) ([]T, error) {
	pool := append([]T(nil), items...)
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]T, 0, n)
	for len(out) < n {
		i, err := Intn(roller, len(pool))
		if err != nil {
			return nil, err
		}
		out = append(out, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out, nil
}

// SortedKeys returns the keys of a string-keyed map in order. Draws over map
// contents go through this so iteration order never leaks into results.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
