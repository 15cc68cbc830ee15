// Package sampler draws categorical and numeric values from an explicitly
// passed random source.
package sampler

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/spec-kit/casegen/pkg/util"
)

// NewSource returns a deterministic generator for seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Choice pairs a value with its probability mass.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Weighted is a discrete weighted sampler over a fixed set of values. Each
// draw is a gonum categorical draw over the weights.
type Weighted[T any] struct {
	values  []T
	weights []float64
}

// NewWeighted builds a sampler. Weights need not sum to one.
func NewWeighted[T any](choices []Choice[T]) (*Weighted[T], error) {
	if len(choices) == 0 {
		return nil, util.NewConfigurationError("weighted sampler needs at least one choice", nil)
	}
	w := &Weighted[T]{
		values:  make([]T, len(choices)),
		weights: make([]float64, len(choices)),
	}
	total := 0.0
	for i, c := range choices {
		if c.Weight < 0 || math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
			return nil, util.NewConfigurationError("weight must be finite and non-negative",
				map[string]any{"index": i, "weight": c.Weight})
		}
		total += c.Weight
		w.values[i] = c.Value
		w.weights[i] = c.Weight
	}
	if total <= 0 {
		return nil, util.NewConfigurationError("weights must not sum to zero", nil)
	}
	return w, nil
}

// Zip pairs values with weights aligned by index.
func Zip[T any](values []T, weights []float64) ([]Choice[T], error) {
	if len(values) != len(weights) {
		return nil, util.NewConfigurationError("weights not aligned with values",
			map[string]any{"values": len(values), "weights": len(weights)})
	}
	choices := make([]Choice[T], len(values))
	for i := range values {
		choices[i] = Choice[T]{Value: values[i], Weight: weights[i]}
	}
	return choices, nil
}

// Draw consumes one uniform variate from rng and returns the selected value.
func (w *Weighted[T]) Draw(rng *rand.Rand) T {
	i := int(distuv.NewCategorical(w.weights, rng).Rand())
	return w.values[i]
}

// Len returns the number of values.
func (w *Weighted[T]) Len() int {
	return len(w.values)
}

// Uniform draws one element of values with equal probability.
func Uniform[T any](rng *rand.Rand, values []T) (T, error) {
	if len(values) == 0 {
		var zero T
		return zero, util.NewConfigurationError("cannot draw from an empty candidate list", nil)
	}
	return values[rng.IntN(len(values))], nil
}

// IntRange draws an integer uniformly from [lo, hi] inclusive.
func IntRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// LogNormal draws exp(N(mu, sigma^2)). The result is positive for any finite mu.
func LogNormal(rng *rand.Rand, mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: rng}.Rand()
}

// Bernoulli reports true with probability p.
func Bernoulli(rng *rand.Rand, p float64) bool {
	return distuv.Bernoulli{P: p, Src: rng}.Rand() == 1
}

// SampleWithoutReplacement returns k distinct elements of population in random
// order. k is capped at len(population).
func SampleWithoutReplacement[T any](rng *rand.Rand, population []T, k int) []T {
	if k > len(population) {
		k = len(population)
	}
	if k <= 0 {
		return nil
	}
	pool := append([]T(nil), population...)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
