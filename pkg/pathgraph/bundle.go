package pathgraph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// Bundle is the ordered collection of paths that is saved and loaded as a
// whole. It exclusively owns its paths and their waypoints.
//
// The zero value is not usable - use NewBundle.
type Bundle struct {
	paths  []*Path
	nextID PathID
}

// NewBundle creates an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{nextID: 1}
}

// Connection describes the outcome of [Bundle.Connect].
type Connection struct {
	Merged bool   // the first waypoint's path was folded into the target's path
	Path   PathID // the path holding both waypoints afterwards
	Offset int    // id offset applied to the merged waypoints (0 when not merged)
	Added  int    // number of new edges (0, 1 or 2)
}

// Len returns the number of paths.
func (b *Bundle) Len() int { return len(b.paths) }

// Paths returns the paths in order.
// The slice is owned by the bundle and must not be modified.
func (b *Bundle) Paths() []*Path { return b.paths }

// CreatePath adds a new path rooted at root and returns it.
func (b *Bundle) CreatePath(root *Waypoint) *Path {
	p := NewPath(root)
	b.AddPath(p)
	return p
}

// AddPath assigns p the next path id, tags its waypoints and appends it.
func (b *Bundle) AddPath(p *Path) {
	if b.nextID == 0 {
		b.nextID = 1
	}
	p.retag(b.nextID)
	b.nextID++
	b.paths = append(b.paths, p)
}

// AddWaypointToPath appends w to p. p must belong to b.
func (b *Bundle) AddWaypointToPath(p *Path, w *Waypoint) {
	p.AddWaypoint(w)
}

// Path returns the path with the given id, or nil.
func (b *Bundle) Path(id PathID) *Path {
	if id == 0 {
		return nil
	}
	for _, p := range b.paths {
		if p.id == id {
			return p
		}
	}
	return nil
}

// PathOf returns the path holding w, or nil if w is not part of this bundle.
func (b *Bundle) PathOf(w *Waypoint) *Path {
	if w == nil {
		return nil
	}
	p := b.Path(w.path)
	if p == nil || w.ID < 0 || w.ID >= len(p.waypoints) || p.waypoints[w.ID] != w {
		return nil
	}
	return p
}

// Connect links a and t with a matched pair of edges.
//
// By convention a is the waypoint just placed and t the existing target.
// When they live in different paths, a's path is removed from the bundle and
// integrated into t's path, so t's path and its root survive. Connecting two
// waypoints that are already linked adds nothing.
func (b *Bundle) Connect(a, t *Waypoint) (Connection, error) {
	pa := b.PathOf(a)
	if pa == nil {
		return Connection{}, errors.New(errors.ErrCodeNotMember, "%s is not part of this bundle", describe(a))
	}
	pt := b.PathOf(t)
	if pt == nil {
		return Connection{}, errors.New(errors.ErrCodeNotMember, "%s is not part of this bundle", describe(t))
	}

	conn := Connection{Path: pt.id}
	if pa != pt {
		b.removePath(pa)
		conn.Merged = true
		conn.Offset = pt.Size()
		pt.Integrate(pa)
	}

	if a.AddConnection(t) {
		conn.Added++
	}
	if t.AddConnection(a) {
		conn.Added++
	}
	return conn, nil
}

func (b *Bundle) removePath(p *Path) {
	b.paths = slices.DeleteFunc(b.paths, func(q *Path) bool { return q == p })
}

// Waypoints returns every waypoint of the bundle, path by path in id order.
func (b *Bundle) Waypoints() []*Waypoint {
	out := make([]*Waypoint, 0, b.WaypointCount())
	for _, p := range b.paths {
		out = append(out, p.waypoints...)
	}
	return out
}

// WaypointCount returns the total number of waypoints.
func (b *Bundle) WaypointCount() int {
	n := 0
	for _, p := range b.paths {
		n += len(p.waypoints)
	}
	return n
}

// EdgeCount returns the total number of directed edges.
func (b *Bundle) EdgeCount() int {
	n := 0
	for _, p := range b.paths {
		n += p.EdgeCount()
	}
	return n
}

// IsEmpty reports whether the bundle holds no waypoints.
func (b *Bundle) IsEmpty() bool { return b.WaypointCount() == 0 }

// Clear removes every path.
func (b *Bundle) Clear() {
	b.paths = nil
}

// Scale multiplies every coordinate by (sx, sy).
func (b *Bundle) Scale(sx, sy float64) {
	for _, p := range b.paths {
		p.Scale(sx, sy)
	}
}

// Validate checks every path and that no waypoint appears twice.
func (b *Bundle) Validate() error {
	seen := make(map[*Waypoint]PathID, b.WaypointCount())
	ids := make(map[PathID]bool, len(b.paths))
	for _, p := range b.paths {
		if p.id == 0 || ids[p.id] {
			return errors.New(errors.ErrCodeInternal, "path id %d is not unique", p.id)
		}
		ids[p.id] = true
		if err := p.Validate(); err != nil {
			return err
		}
		for _, w := range p.waypoints {
			if other, ok := seen[w]; ok {
				return errors.New(errors.ErrCodeNotMember, "waypoint %d of path %d also appears in path %d", w.ID, p.id, other)
			}
			seen[w] = p.id
		}
	}
	return nil
}

// Equal reports whether b and other hold the same paths in order, the same
// waypoints (id, position) in order and the same edges in order.
// Path ids are not compared.
func (b *Bundle) Equal(other *Bundle) bool {
	if b == nil || other == nil {
		return b == other
	}
	if len(b.paths) != len(other.paths) {
		return false
	}
	for i, p := range b.paths {
		q := other.paths[i]
		if len(p.waypoints) != len(q.waypoints) {
			return false
		}
		for j, w := range p.waypoints {
			v := q.waypoints[j]
			if w.ID != v.ID || w.X != v.X || w.Y != v.Y || !slices.Equal(w.edges, v.edges) {
				return false
			}
		}
	}
	return true
}

func describe(w *Waypoint) string {
	if w == nil {
		return "nil waypoint"
	}
	return fmt.Sprintf("waypoint %d at (%d,%d)", w.ID, w.X, w.Y)
}
