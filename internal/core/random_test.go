package core

import (
	"math/rand"
	"testing"
	"time"
)

func TestWeightedPickRespectsSupport(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	options := []Weighted{{"Active", 0.7}, {"Maintenance", 0.2}, {"Fault", 0.1}}
	seen := make(map[string]int)
	for i := 0; i < 1000; i++ {
		seen[WeightedPick(rng, options)]++
	}
	for _, o := range options {
		if seen[o.Value] == 0 {
			t.Fatalf("option %s never drawn", o.Value)
		}
	}
	if seen["Active"] < seen["Fault"] {
		t.Fatalf("weights ignored: Active=%d Fault=%d", seen["Active"], seen["Fault"])
	}
}

func TestWeightedPickDegenerateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	if got := WeightedPick(rng, nil); got != "" {
		t.Fatalf("empty options must yield empty string, got %q", got)
	}
	if got := WeightedPick(rng, []Weighted{{"only", 0}}); got != "only" {
		t.Fatalf("zero total weight must fall back to first option, got %q", got)
	}
}

func TestIntBetweenInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	histogram := make(map[int]int)
	for i := 0; i < 500; i++ {
		v := IntBetween(rng, 2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("value %d outside [2,4]", v)
		}
		histogram[v]++
	}
	if histogram[2] == 0 || histogram[4] == 0 {
		t.Fatalf("bounds never drawn: %v", histogram)
	}
	if IntBetween(rng, 5, 5) != 5 {
		t.Fatalf("degenerate range must return lo")
	}
}

func TestFloatBetweenAndNormalAroundBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		if v := FloatBetween(rng, 1.5, 2.5); v < 1.5 || v >= 2.5 {
			t.Fatalf("float %f outside [1.5,2.5)", v)
		}
		if v := NormalAround(rng, 50, 30, 0, 100); v < 0 || v > 100 {
			t.Fatalf("normal draw %f escaped clamp", v)
		}
	}
}

func TestDateBetween(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	for i := 0; i < 100; i++ {
		d := DateBetween(rng, start, end)
		if d.Before(start) || !d.Before(end) {
			t.Fatalf("date %s outside window", d)
		}
	}
	if got := DateBetween(rng, end, start); !got.Equal(end) {
		t.Fatalf("inverted window must return start bound, got %s", got)
	}
}
