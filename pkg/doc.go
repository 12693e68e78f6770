// Package pkg provides the core libraries for pathmaker.
//
// # Overview
//
// Pathmaker keeps maps of hand-drawn paths. A path is a graph of waypoints
// (integer screen points) linked by edges; a bundle holds every path on a
// map. Drawing a stroke from one path onto another folds both into a single
// path. Maps are stored as compact text:
//
//	$<{0(0,0)[1]}{1(40,0)[0]}>$
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [pathgraph], [mapfile], [editor]
//  2. Output: [render], [render/nodelink]
//  3. Infrastructure: [store], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	touch events or gesture script
//	         ↓
//	    [editor] session (press / move / release)
//	         ↓
//	    [pathgraph] bundle (integrate, connect, traverse)
//	         ↓
//	    [mapfile] text  →  [store] backend
//	         ↓
//	    [render/nodelink] DOT / SVG
//
// # Quick Start
//
// Build a bundle, connect two paths and save it:
//
//	b := pathgraph.NewBundle()
//	p := b.CreatePath(pathgraph.NewWaypoint(0, 0))
//	q := b.CreatePath(pathgraph.NewWaypoint(40, 0))
//	conn, _ := b.Connect(q.Root(), p.Root()) // q is merged into p
//
//	st, _ := store.NewFileStore("maps")
//	name, _ := store.Save(ctx, st, "lab", b) // "lab.map"
//
// # Main Packages
//
// [pathgraph] - Waypoints, paths and bundles. [pathgraph.Path.Integrate]
// appends another path with shifted edge ids; [pathgraph.Bundle.Connect]
// links two waypoints, merging their paths first when they differ.
// [pathgraph.Index] answers nearest-waypoint queries from an R-tree.
//
// [mapfile] - The $<{id(x,y)[t]}>$ codec. Decoding is all or nothing and
// reports the byte offset of the first error.
//
// [editor] - The gesture state machine that turns touch events into paths,
// plus a line-based script format for replaying gestures.
//
// [store] - Map persistence behind one interface: memory, directory, Redis,
// S3 and MongoDB backends, with an optional LRU cache in front.
//
// [render/nodelink] - Graphviz drawings with waypoints pinned to their
// stored positions and one color per path.
//
// [config] - TOML file, .env and PATHMAKER_* environment settings.
//
// # Testing
//
// Run tests:
//
//	go test ./...                         # All tests
//	go test -run Example ./pkg/...        # Examples only
//	go test -tags integration ./pkg/...   # Include Redis, S3 and MongoDB tests
//
// [pathgraph]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/pathgraph
// [mapfile]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/mapfile
// [editor]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/editor
// [render]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/render/nodelink
// [store]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pathmaker/pkg/buildinfo
package pkg
