package editor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/observability"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/store"
)

const eastStroke = `
# first tap only starts a pan
down 100 100 0
up   100 100 40
# second tap inside the window creates a path
down 100 100 200
move 140 100 250
move 180 100 300
up   180 100 350
`

// southStroke draws a second path that ends next to the first path's root.
const southStroke = `
down 100 300 1000
up   100 300 1050
down 100 300 1100
move 100 260
move 100 220
move 100 180
move 100 140
up   100 140 1400
`

func replay(t *testing.T, s *Session, script string) map[Action]int {
	t.Helper()
	events, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	counts, err := s.Replay(context.Background(), events)
	if err != nil {
		t.Fatalf("Replay() error: %v", err)
	}
	return counts
}

func coords(p *pathgraph.Path) [][2]int {
	var out [][2]int
	for _, w := range p.Waypoints() {
		out = append(out, [2]int{w.X, w.Y})
	}
	return out
}

func TestDoubleTapAndDragCreatesPath(t *testing.T) {
	s := NewSession(DefaultOptions())
	counts := replay(t, s, eastStroke)

	if counts[ActionPan] != 1 || counts[ActionCreatePath] != 1 || counts[ActionExtend] != 2 {
		t.Errorf("actions = %v", counts)
	}
	b := s.Bundle()
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	p := b.Paths()[0]
	want := [][2]int{{100, 100}, {140, 100}, {180, 100}}
	got := coords(p)
	if len(got) != len(want) {
		t.Fatalf("waypoints = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("waypoint %d = %v, want %v", i, got[i], want[i])
		}
	}
	for i := 1; i < p.Size(); i++ {
		a, prev := p.MustWaypoint(i), p.MustWaypoint(i-1)
		if !a.HasEdgeTo(prev.ID) || !prev.HasEdgeTo(a.ID) {
			t.Errorf("waypoints %d and %d are not linked both ways", i-1, i)
		}
	}
	if s.Stroking() {
		t.Error("stroke should end on release")
	}
}

func TestReleaseNearOtherPathMerges(t *testing.T) {
	s := NewSession(DefaultOptions())
	replay(t, s, eastStroke)
	counts := replay(t, s, southStroke)

	if counts[ActionConnect] != 1 {
		t.Fatalf("actions = %v, want one connect", counts)
	}
	b := s.Bundle()
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after merge", b.Len())
	}
	p := b.Paths()[0]
	if p.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", p.Size())
	}
	if root := p.Root(); root.X != 100 || root.Y != 100 {
		t.Errorf("root = (%d,%d), want the first path's root", root.X, root.Y)
	}
	tail := p.MustWaypoint(7)
	if tail.X != 100 || tail.Y != 140 {
		t.Errorf("waypoint 7 = (%d,%d), want (100,140)", tail.X, tail.Y)
	}
	if !p.Root().HasEdgeTo(7) || !tail.HasEdgeTo(0) {
		t.Error("release should link the stroke end to the first root")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	reached, err := p.Reachable()
	if err != nil || len(reached) != 8 {
		t.Errorf("Reachable() = %d waypoints, %v; want all 8", len(reached), err)
	}
}

func TestPressNearWaypointContinuesPath(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())
	replay(t, s, eastStroke)

	a, err := s.Press(ctx, 182, 103, 5000*time.Millisecond)
	if err != nil || a != ActionSelect {
		t.Fatalf("Press() = %v, %v; want select", a, err)
	}
	if a, _ := s.Move(ctx, 200, 100, 5010*time.Millisecond); a != ActionNone {
		t.Errorf("short Move() = %v, want none", a)
	}
	if a, _ := s.Move(ctx, 220, 100, 5020*time.Millisecond); a != ActionExtend {
		t.Errorf("Move() = %v, want extend", a)
	}
	if a, _ := s.Release(ctx, 220, 100, 5030*time.Millisecond); a != ActionEnd {
		t.Errorf("Release() = %v, want end", a)
	}
	if got := s.Bundle().WaypointCount(); got != 4 {
		t.Errorf("WaypointCount() = %d, want 4", got)
	}
}

func TestPanIgnoresMoves(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())

	if a, _ := s.Press(ctx, 0, 0, 0); a != ActionPan {
		t.Fatalf("Press() = %v, want pan", a)
	}
	if a, _ := s.Move(ctx, 300, 300, 10*time.Millisecond); a != ActionNone {
		t.Errorf("Move() while panning = %v, want none", a)
	}
	if a, _ := s.Release(ctx, 300, 300, 20*time.Millisecond); a != ActionEnd {
		t.Errorf("Release() = %v, want end", a)
	}
	// Too late for a double tap
	if a, _ := s.Press(ctx, 0, 0, 600*time.Millisecond); a != ActionPan {
		t.Errorf("late second Press() = %v, want pan", a)
	}
	if !s.Bundle().IsEmpty() {
		t.Error("panning must not add waypoints")
	}
}

func TestDoubleTapWindow(t *testing.T) {
	tests := []struct {
		name   string
		second time.Duration
		want   Action
	}{
		{"inside window", 499 * time.Millisecond, ActionCreatePath},
		{"at window edge", 500 * time.Millisecond, ActionPan},
		{"after window", 2 * time.Second, ActionPan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewSession(DefaultOptions())
			if a, _ := s.Press(ctx, 10, 10, 0); a != ActionPan {
				t.Fatalf("first Press() = %v, want pan", a)
			}
			if a, _ := s.Release(ctx, 10, 10, 50*time.Millisecond); a != ActionEnd {
				t.Fatalf("Release() = %v, want end", a)
			}
			if a, _ := s.Press(ctx, 10, 10, tt.second); a != tt.want {
				t.Errorf("second Press() = %v, want %v", a, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	s := NewSession(DefaultOptions())
	if _, err := s.Save(ctx, st, "sketch"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(empty) = %v, want INVALID_INPUT", err)
	}
	replay(t, s, eastStroke)
	name, err := s.Save(ctx, st, "sketch")
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if name != "sketch.map" {
		t.Errorf("Save() name = %q", name)
	}

	other := NewSession(DefaultOptions())
	replay(t, other, southStroke)
	before := other.Bundle()
	if err := other.Load(ctx, st, "missing"); err == nil {
		t.Fatal("Load(missing) should fail")
	}
	if other.Bundle() != before {
		t.Error("failed Load must keep the current bundle")
	}

	if err := other.Load(ctx, st, "sketch"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !other.Bundle().Equal(s.Bundle()) {
		t.Error("loaded bundle differs from saved one")
	}
	// the index was rebuilt: pressing on a loaded waypoint selects it
	if a, _ := other.Press(ctx, 140, 100, 0); a != ActionSelect {
		t.Errorf("Press() on loaded waypoint = %v, want select", a)
	}

	other.Clear()
	if !other.Bundle().IsEmpty() || other.Stroking() {
		t.Error("Clear() should empty the bundle and drop the stroke")
	}
}

type countingEditHooks struct {
	observability.NoopEditHooks
	created, connects, merges int
}

func (h *countingEditHooks) OnPathCreated(context.Context, int, int, int) { h.created++ }
func (h *countingEditHooks) OnConnect(_ context.Context, merged bool, _ int) {
	h.connects++
	if merged {
		h.merges++
	}
}

func TestEditHooks(t *testing.T) {
	hooks := &countingEditHooks{}
	observability.SetEditHooks(hooks)
	defer observability.Reset()

	s := NewSession(DefaultOptions())
	replay(t, s, eastStroke)
	replay(t, s, southStroke)

	if hooks.created != 2 {
		t.Errorf("created = %d, want 2", hooks.created)
	}
	// 2 + 4 extensions plus the merging release
	if hooks.connects != 7 || hooks.merges != 1 {
		t.Errorf("connects = %d, merges = %d; want 7, 1", hooks.connects, hooks.merges)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(Options{})
	if s.opts.MinDistance != 30 || s.opts.MaxDistance != 50 || s.opts.DoubleTap.Milliseconds() != 500 {
		t.Errorf("opts = %+v", s.opts)
	}
}

func TestActionString(t *testing.T) {
	if ActionCreatePath.String() != "create-path" || Action(99).String() != "unknown" {
		t.Error("unexpected Action names")
	}
}
