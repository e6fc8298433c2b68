package game

import (
	"math"
	"testing"
)

// sequence replays fixed values in [0, 1), cycling.
type sequence struct {
	values []float64
	i      int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestShouldSpawnIsStrict(t *testing.T) {
	s := NewSpawnScheduler(&sequence{values: []float64{0}})
	tests := []struct {
		timer, interval float64
		want            bool
	}{
		{timer: 0, interval: 1.5, want: false},
		{timer: 1.5, interval: 1.5, want: false},
		{timer: 1.5001, interval: 1.5, want: true},
		{timer: 40, interval: 1.5, want: true},
	}
	for _, tt := range tests {
		if got := s.ShouldSpawn(tt.timer, tt.interval); got != tt.want {
			t.Errorf("ShouldSpawn(%v, %v) = %v, want %v", tt.timer, tt.interval, got, tt.want)
		}
	}
}

func TestPlaceNewUsesInjectedAngle(t *testing.T) {
	s := NewSpawnScheduler(&sequence{values: []float64{0, 0.25, 0.5}})

	tests := []struct {
		name string
		want Vec3
	}{
		{name: "0 degrees", want: Vec3{X: 0.45, Y: 0.04, Z: 0}},
		{name: "90 degrees", want: Vec3{X: 0, Y: 0.04, Z: 0.45}},
		{name: "180 degrees", want: Vec3{X: -0.45, Y: 0.04, Z: 0}},
	}
	for _, tt := range tests {
		got := s.PlaceNew(0.45, 0.04)
		if math.Abs(got.X-tt.want.X) > 1e-9 || got.Y != tt.want.Y || math.Abs(got.Z-tt.want.Z) > 1e-9 {
			t.Fatalf("%s: PlaceNew = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestPlaceNewStaysOnRing(t *testing.T) {
	s := NewSpawnScheduler(NewRand(42))
	for i := 0; i < 500; i++ {
		p := s.PlaceNew(0.45, 0.04)
		if r := math.Hypot(p.X, p.Z); math.Abs(r-0.45) > 1e-9 {
			t.Fatalf("spawn %d at radius %v, want 0.45", i, r)
		}
		if p.Y != 0.04 {
			t.Fatalf("spawn %d at height %v, want 0.04", i, p.Y)
		}
	}
}

func TestSeededPlacementIsReproducible(t *testing.T) {
	a := NewSpawnScheduler(NewRand(7))
	b := NewSpawnScheduler(NewRand(7))
	for i := 0; i < 20; i++ {
		pa, pb := a.PlaceNew(1, 0), b.PlaceNew(1, 0)
		if pa != pb {
			t.Fatalf("spawn %d differs between equal seeds: %+v vs %+v", i, pa, pb)
		}
	}
}
