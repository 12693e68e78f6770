package pathgraph

import (
	"fmt"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// Path is one connected component of waypoints, indexed by id.
// The waypoint at index 0 is the root and the start of every traversal.
//
// The zero value is an empty, unattached path.
type Path struct {
	id        PathID
	waypoints []*Waypoint
}

// NewPath creates an unattached path whose root is root.
func NewPath(root *Waypoint) *Path {
	p := &Path{}
	p.AddWaypoint(root)
	return p
}

// ID returns the bundle-assigned id, or zero for an unattached path.
func (p *Path) ID() PathID { return p.id }

// Size returns the number of waypoints.
func (p *Path) Size() int { return len(p.waypoints) }

// Root returns the waypoint at index 0, or nil for an empty path.
func (p *Path) Root() *Waypoint {
	if len(p.waypoints) == 0 {
		return nil
	}
	return p.waypoints[0]
}

// Waypoints returns the waypoints in id order.
// The slice is owned by the path and must not be modified.
func (p *Path) Waypoints() []*Waypoint { return p.waypoints }

// AddWaypoint assigns w the next free id, tags it with this path and
// appends it.
func (p *Path) AddWaypoint(w *Waypoint) {
	w.ID = len(p.waypoints)
	w.path = p.id
	p.waypoints = append(p.waypoints, w)
}

// Waypoint returns the waypoint with the given id.
// An id with no waypoint behind it is a caller bug and yields an
// OUT_OF_RANGE error.
func (p *Path) Waypoint(id int) (*Waypoint, error) {
	if id < 0 || id >= len(p.waypoints) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "waypoint %d not in path %d (size %d)", id, p.id, len(p.waypoints))
	}
	return p.waypoints[id], nil
}

// MustWaypoint returns the waypoint with the given id, or panics.
func (p *Path) MustWaypoint(id int) *Waypoint {
	w, err := p.Waypoint(id)
	if err != nil {
		panic(fmt.Sprintf("pathgraph: %v", err))
	}
	return w
}

// Integrate moves every waypoint of other into p, leaving other empty.
//
// The offset is the length of p before the merge. All edges of other are
// shifted by it first, then the waypoints are appended, which renumbers each
// one to old id + offset. Edges that were valid in other stay valid in p.
// Removing other from its bundle is the caller's job.
func (p *Path) Integrate(other *Path) {
	if other == p {
		return
	}
	offset := len(p.waypoints)
	for _, w := range other.waypoints {
		w.ShiftEdgeIDs(offset)
	}
	for _, w := range other.waypoints {
		p.AddWaypoint(w)
	}
	other.waypoints = nil
}

// Scale multiplies every coordinate by (sx, sy), truncating toward zero.
func (p *Path) Scale(sx, sy float64) {
	for _, w := range p.waypoints {
		w.X = int(float64(w.X) * sx)
		w.Y = int(float64(w.Y) * sy)
	}
}

// EdgeCount returns the number of directed edges in the path.
func (p *Path) EdgeCount() int {
	n := 0
	for _, w := range p.waypoints {
		n += len(w.edges)
	}
	return n
}

// Validate checks the path invariants: ids are dense and equal to their
// index, every waypoint carries this path's tag and every edge resolves.
func (p *Path) Validate() error {
	for i, w := range p.waypoints {
		if w.ID != i {
			return errors.New(errors.ErrCodeOutOfRange, "path %d: waypoint at index %d has id %d", p.id, i, w.ID)
		}
		if w.path != p.id {
			return errors.New(errors.ErrCodeNotMember, "path %d: waypoint %d is tagged with path %d", p.id, i, w.path)
		}
		for _, e := range w.edges {
			if e.Target < 0 || e.Target >= len(p.waypoints) {
				return errors.New(errors.ErrCodeOutOfRange, "path %d: waypoint %d has edge to missing waypoint %d", p.id, i, e.Target)
			}
		}
	}
	return nil
}

func (p *Path) retag(id PathID) {
	p.id = id
	for _, w := range p.waypoints {
		w.path = id
	}
}
