package core

import (
	"math/rand"
	"time"
)

// Weighted is one option of a weighted categorical draw.
type Weighted struct {
	Value  string
	Weight float64
}

// WeightedPick draws one value according to the listed weights. Weights need
// not sum to one. Options are evaluated in slice order so a fixed seed yields
// a fixed draw sequence.
func WeightedPick(rng *rand.Rand, options []Weighted) string {
	if len(options) == 0 {
		return ""
	}
	total := 0.0
	for _, o := range options {
		total += o.Weight
	}
	if total <= 0 {
		return options[0].Value
	}
	target := rng.Float64() * total
	for _, o := range options {
		target -= o.Weight
		if target < 0 {
			return o.Value
		}
	}
	return options[len(options)-1].Value
}

// Pick returns a uniformly random element, or the zero value for an empty slice.
func Pick[T any](rng *rand.Rand, values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[rng.Intn(len(values))]
}

// IntBetween draws an integer in [lo, hi] inclusive.
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// FloatBetween draws a float in [lo, hi).
func FloatBetween(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// NormalAround draws from a normal distribution with the given mean and
// standard deviation, clamped to [lo, hi].
func NormalAround(rng *rand.Rand, mean, stddev, lo, hi float64) float64 {
	v := mean + rng.NormFloat64()*stddev
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// DateBetween draws a time uniformly in [start, end).
func DateBetween(rng *rand.Rand, start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := end.Sub(start)
	return start.Add(time.Duration(rng.Int63n(int64(span))))
}
