package pathgraph

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

func TestNearestWaypoint(t *testing.T) {
	a := &Waypoint{ID: 0, X: 0, Y: 0}
	b := &Waypoint{ID: 1, X: 30, Y: 0}
	c := &Waypoint{ID: 2, X: 0, Y: 40}
	twin := &Waypoint{ID: 3, X: 30, Y: 0}
	all := []*Waypoint{a, b, c, twin}

	tests := []struct {
		name    string
		target  orb.Point
		max     float64
		exclude []*Waypoint
		want    *Waypoint
	}{
		{"closest", orb.Point{2, 1}, 50, nil, a},
		{"strictly less than max", orb.Point{0, 10}, 10, nil, nil},
		{"just inside max", orb.Point{0, 10}, 10.0001, nil, a},
		{"ties go to first", orb.Point{30, 5}, 50, nil, b},
		{"exclude skips", orb.Point{30, 5}, 50, []*Waypoint{b}, twin},
		{"exclude all near", orb.Point{1, 1}, 20, []*Waypoint{a}, nil},
		{"nil exclude entries", orb.Point{0, 39}, 50, []*Waypoint{nil}, c},
		{"zero max", orb.Point{0, 0}, 0, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestWaypoint(all, tt.target, tt.max, tt.exclude...)
			if got != tt.want {
				t.Errorf("NearestWaypoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearestWaypointEmpty(t *testing.T) {
	if got := NearestWaypoint(nil, orb.Point{}, 100); got != nil {
		t.Errorf("NearestWaypoint(nil) = %v, want nil", got)
	}
}

func TestIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBundle()
	for i := 0; i < 8; i++ {
		p := b.CreatePath(NewWaypoint(rng.Intn(1000), rng.Intn(1000)))
		for j := 0; j < 30; j++ {
			b.AddWaypointToPath(p, NewWaypoint(rng.Intn(1000), rng.Intn(1000)))
		}
	}
	ix := NewIndex(b)
	if ix.Len() != b.WaypointCount() {
		t.Fatalf("Len() = %d, want %d", ix.Len(), b.WaypointCount())
	}

	all := b.Waypoints()
	for i := 0; i < 200; i++ {
		target := orb.Point{float64(rng.Intn(1000)), float64(rng.Intn(1000))}
		exclude := all[rng.Intn(len(all))]
		want := NearestWaypoint(all, target, 50, exclude)
		got := ix.Nearest(target, 50, exclude)
		if got != want {
			t.Fatalf("query %v: Index.Nearest = %v, NearestWaypoint = %v", target, got, want)
		}
	}
}

func TestIndexTiesFollowInsertionOrder(t *testing.T) {
	first := NewWaypoint(10, 0)
	second := NewWaypoint(-10, 0)
	ix := NewIndex(nil)
	ix.Insert(first)
	ix.Insert(second)
	ix.Insert(first)

	if ix.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ix.Len())
	}
	if got := ix.Nearest(orb.Point{0, 0}, 50); got != first {
		t.Errorf("Nearest() = %v, want first inserted", got)
	}
}

func TestIndexRemove(t *testing.T) {
	w := NewWaypoint(5, 5)
	ix := NewIndex(nil)
	ix.Insert(w)

	if !ix.Remove(w) {
		t.Fatal("Remove() = false, want true")
	}
	if ix.Remove(w) {
		t.Error("second Remove() = true, want false")
	}
	if got := ix.Nearest(orb.Point{5, 5}, 50); got != nil {
		t.Errorf("Nearest() after Remove = %v, want nil", got)
	}
}
