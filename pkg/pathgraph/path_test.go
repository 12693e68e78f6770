package pathgraph

import (
	"testing"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// chain builds a path of n waypoints along the x axis with each waypoint
// linked to its predecessor in both directions.
func chain(n, y int) *Path {
	p := NewPath(NewWaypoint(0, y))
	for i := 1; i < n; i++ {
		w := NewWaypoint(i*10, y)
		p.AddWaypoint(w)
		prev := p.MustWaypoint(i - 1)
		w.AddConnection(prev)
		prev.AddConnection(w)
	}
	return p
}

func assertDenseIDs(t *testing.T, p *Path) {
	t.Helper()
	for i, w := range p.Waypoints() {
		if w.ID != i {
			t.Fatalf("waypoint at index %d has id %d", i, w.ID)
		}
	}
}

func TestAddWaypointAssignsIDs(t *testing.T) {
	p := NewPath(NewWaypoint(1, 1))
	for i := 0; i < 5; i++ {
		p.AddWaypoint(NewWaypoint(i, i))
	}
	if p.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", p.Size())
	}
	assertDenseIDs(t, p)
	if p.Root().X != 1 {
		t.Errorf("Root().X = %d, want 1", p.Root().X)
	}
}

func TestWaypointOutOfRange(t *testing.T) {
	p := chain(3, 0)

	for _, id := range []int{-1, 3, 100} {
		w, err := p.Waypoint(id)
		if err == nil {
			t.Errorf("Waypoint(%d) = %v, want error", id, w)
			continue
		}
		if !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("Waypoint(%d) code = %v, want %v", id, errors.GetCode(err), errors.ErrCodeOutOfRange)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustWaypoint(3) should panic")
		}
	}()
	p.MustWaypoint(3)
}

func TestEmptyPath(t *testing.T) {
	var p Path
	if p.Root() != nil {
		t.Error("Root() of empty path should be nil")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestIntegratePreservesEdges(t *testing.T) {
	tests := []struct {
		name string
		n, m int
	}{
		{"single into single", 1, 1},
		{"chain into single", 1, 4},
		{"single into chain", 4, 1},
		{"chain into chain", 5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1 := chain(tt.n, 0)
			p2 := chain(tt.m, 100)
			// extra cycle edge inside p2 to make sure non-sequential edges survive
			if tt.m > 2 {
				p2.MustWaypoint(tt.m - 1).AddConnection(p2.Root())
			}
			want := make(map[*Waypoint][]int)
			for _, w := range p2.Waypoints() {
				for _, e := range w.Edges() {
					want[w] = append(want[w], e.Target+tt.n)
				}
			}

			p1.Integrate(p2)

			if p1.Size() != tt.n+tt.m {
				t.Fatalf("Size() = %d, want %d", p1.Size(), tt.n+tt.m)
			}
			if p2.Size() != 0 {
				t.Errorf("source Size() = %d, want 0", p2.Size())
			}
			assertDenseIDs(t, p1)
			if err := p1.Validate(); err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			for _, w := range p1.Waypoints() {
				for _, e := range w.Edges() {
					if _, err := p1.Waypoint(e.Target); err != nil {
						t.Errorf("edge %d->%d does not resolve: %v", w.ID, e.Target, err)
					}
				}
			}
			for w, targets := range want {
				got := w.Edges()
				if len(got) != len(targets) {
					t.Fatalf("waypoint %d has %d edges, want %d", w.ID, len(got), len(targets))
				}
				for i := range got {
					if got[i].Target != targets[i] {
						t.Errorf("waypoint %d edge %d = %d, want %d", w.ID, i, got[i].Target, targets[i])
					}
				}
			}
		})
	}
}

func TestIntegrateSelfIsNoop(t *testing.T) {
	p := chain(3, 0)
	p.Integrate(p)
	if p.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", p.Size())
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestIDDensityAfterMixedOperations(t *testing.T) {
	p := chain(2, 0)
	p.AddWaypoint(NewWaypoint(5, 5))
	p.Integrate(chain(3, 10))
	p.AddWaypoint(NewWaypoint(6, 6))
	p.Integrate(chain(1, 20))
	p.Integrate(&Path{})

	if p.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", p.Size())
	}
	assertDenseIDs(t, p)
}

func TestScale(t *testing.T) {
	p := NewPath(NewWaypoint(10, -10))
	p.AddWaypoint(NewWaypoint(3, 7))
	p.Scale(1.5, 0.5)

	got := [][2]int{{p.MustWaypoint(0).X, p.MustWaypoint(0).Y}, {p.MustWaypoint(1).X, p.MustWaypoint(1).Y}}
	want := [][2]int{{15, -5}, {4, 3}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("waypoint %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestValidateDetectsBrokenEdges(t *testing.T) {
	p := chain(2, 0)
	p.Root().AppendEdge(9)
	err := p.Validate()
	if !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Fatalf("Validate() = %v, want OUT_OF_RANGE", err)
	}
}
