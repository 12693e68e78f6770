package pathgraph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Edge is a directed reference from one waypoint to another in the same path.
type Edge struct {
	Target int // Path-local id of the target waypoint
}

// PathID identifies a path within its bundle. Zero means the path has not
// been added to a bundle yet.
type PathID int

// Waypoint is a positioned node of a path.
//
// ID equals the waypoint's index in its path. Edges keep insertion order so
// that encoding is deterministic.
type Waypoint struct {
	ID int
	X  int
	Y  int

	path  PathID
	edges []Edge
}

// NewWaypoint returns an unattached waypoint at (x, y).
func NewWaypoint(x, y int) *Waypoint {
	return &Waypoint{X: x, Y: y}
}

// PathID returns the id of the path the waypoint was last added to.
func (w *Waypoint) PathID() PathID { return w.path }

// Edges returns the outgoing edges in insertion order.
// The slice is owned by the waypoint and must not be modified.
func (w *Waypoint) Edges() []Edge { return w.edges }

// Degree returns the number of outgoing edges.
func (w *Waypoint) Degree() int { return len(w.edges) }

// HasEdgeTo reports whether w has an outgoing edge targeting id.
func (w *Waypoint) HasEdgeTo(id int) bool {
	for _, e := range w.edges {
		if e.Target == id {
			return true
		}
	}
	return false
}

// AddConnection appends an edge to other unless w already has an edge with
// that target id. It reports whether an edge was added.
// The reverse edge is not added; see [Bundle.Connect].
func (w *Waypoint) AddConnection(other *Waypoint) bool {
	if w.HasEdgeTo(other.ID) {
		return false
	}
	w.edges = append(w.edges, Edge{Target: other.ID})
	return true
}

// AppendEdge appends an edge to target without de-duplication.
// Decoders use it to restore edges exactly as they were persisted.
func (w *Waypoint) AppendEdge(target int) {
	w.edges = append(w.edges, Edge{Target: target})
}

// ShiftEdgeIDs adds offset to every outgoing edge target.
func (w *Waypoint) ShiftEdgeIDs(offset int) {
	for i := range w.edges {
		w.edges[i].Target += offset
	}
}

// Point returns the waypoint position as a planar point.
func (w *Waypoint) Point() orb.Point {
	return orb.Point{float64(w.X), float64(w.Y)}
}

// Distance returns the Euclidean distance from w to p.
func (w *Waypoint) Distance(p orb.Point) float64 {
	return planar.Distance(w.Point(), p)
}
