// Package pathgraph provides the waypoint graph that pathmaker users sketch
// on top of a background image.
//
// # Overview
//
// A [Bundle] owns an ordered list of [Path] values. Each Path is one connected
// component: an id-indexed sequence of [Waypoint] values whose index 0 is the
// root. Waypoints own their outgoing [Edge] values, and an edge names its
// target by path-local id rather than by pointer:
//
//	b := pathgraph.NewBundle()
//	p := b.CreatePath(pathgraph.NewWaypoint(0, 0))
//	next := pathgraph.NewWaypoint(40, 0)
//	b.AddWaypointToPath(p, next)
//	_, _ = b.Connect(next, p.Root())
//
// # Ownership
//
// Waypoints carry a [PathID] tag instead of a pointer to their path. The tag
// is resolved through the owning Bundle ([Bundle.PathOf]), so merging and
// discarding paths never leaves a waypoint pointing at a dead path.
//
// # Merging
//
// [Bundle.Connect] links two waypoints with a matched pair of edges. When the
// waypoints live in different paths, the first waypoint's path is removed
// from the bundle and folded into the second one with [Path.Integrate]: every
// moved edge target is shifted by the pre-merge length of the surviving path,
// then the moved waypoints are appended and renumbered by the same offset.
//
// # Traversal
//
// [Path.Traverse] walks a path depth-first from its root. The visited set
// lives inside the call, so successive traversals need no reset pass.
//
// # Search
//
// [NearestWaypoint] is a linear scan; [Index] answers the same query from an
// R-tree and is what editors rebuild after loading a bundle.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent mutation. A bundle is meant
// to be edited from one goroutine at a time.
package pathgraph
