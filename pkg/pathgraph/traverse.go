package pathgraph

import "github.com/matzehuels/pathmaker/pkg/errors"

// Visitor receives the waypoints and edges reached by [Path.Traverse].
type Visitor interface {
	// VisitWaypoint is called once per reachable waypoint.
	VisitWaypoint(w *Waypoint)
	// VisitEdge is called once per edge leaving a visited waypoint,
	// including edges that lead back to waypoints already visited.
	VisitEdge(from, to *Waypoint)
}

// VisitFuncs adapts plain functions to [Visitor]. Nil fields are skipped.
type VisitFuncs struct {
	Waypoint func(w *Waypoint)
	Edge     func(from, to *Waypoint)
}

// VisitWaypoint implements Visitor.
func (f VisitFuncs) VisitWaypoint(w *Waypoint) {
	if f.Waypoint != nil {
		f.Waypoint(w)
	}
}

// VisitEdge implements Visitor.
func (f VisitFuncs) VisitEdge(from, to *Waypoint) {
	if f.Edge != nil {
		f.Edge(from, to)
	}
}

// Traverse walks p depth-first from its root.
//
// A waypoint is visited, then each of its edges in insertion order is
// reported and followed if its target has not been visited yet. The visited
// set belongs to this call, so traversals can be repeated without a reset.
// Waypoints unreachable from the root are not visited. An edge whose target
// does not resolve stops the walk with an OUT_OF_RANGE error.
func (p *Path) Traverse(v Visitor) error {
	if len(p.waypoints) == 0 {
		return nil
	}
	visited := make([]bool, len(p.waypoints))
	return p.walk(0, visited, v)
}

func (p *Path) walk(id int, visited []bool, v Visitor) error {
	w := p.waypoints[id]
	visited[id] = true
	v.VisitWaypoint(w)
	for _, e := range w.edges {
		child, err := p.Waypoint(e.Target)
		if err != nil {
			return errors.Wrap(errors.ErrCodeOutOfRange, err, "traverse from waypoint %d", w.ID)
		}
		v.VisitEdge(w, child)
		if !visited[e.Target] {
			if err := p.walk(e.Target, visited, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reachable returns the waypoints reachable from the root in visit order.
func (p *Path) Reachable() ([]*Waypoint, error) {
	var out []*Waypoint
	err := p.Traverse(VisitFuncs{Waypoint: func(w *Waypoint) { out = append(out, w) }})
	return out, err
}
