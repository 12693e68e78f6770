package pathgraph

import (
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// pointTolerance is the half-width of the box stored for each waypoint.
const pointTolerance = 0.5

// indexEntry wraps a waypoint for R-tree storage.
type indexEntry struct {
	waypoint *Waypoint
	seq      uint64
	rect     rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *indexEntry) Bounds() rtreego.Rect { return e.rect }

// Index answers nearest-waypoint queries from an R-tree.
//
// Entries capture waypoint positions at insertion time; after moving
// waypoints (for example with [Bundle.Scale]) call [Index.Reset].
type Index struct {
	tree    *rtreego.Rtree
	entries map[*Waypoint]*indexEntry
	seq     uint64
}

// NewIndex creates an index over every waypoint of b. b may be nil.
func NewIndex(b *Bundle) *Index {
	ix := &Index{}
	ix.Reset(b)
	return ix
}

// Reset drops every entry and re-indexes b. b may be nil.
func (ix *Index) Reset(b *Bundle) {
	ix.tree = rtreego.NewTree(2, 25, 50)
	ix.entries = make(map[*Waypoint]*indexEntry)
	ix.seq = 0
	if b == nil {
		return
	}
	for _, w := range b.Waypoints() {
		ix.Insert(w)
	}
}

// Len returns the number of indexed waypoints.
func (ix *Index) Len() int { return len(ix.entries) }

// Insert adds w. Inserting a waypoint twice is a no-op.
func (ix *Index) Insert(w *Waypoint) {
	if w == nil {
		return
	}
	if _, ok := ix.entries[w]; ok {
		return
	}
	e := &indexEntry{
		waypoint: w,
		seq:      ix.seq,
		rect:     rtreego.Point{float64(w.X), float64(w.Y)}.ToRect(pointTolerance),
	}
	ix.seq++
	ix.entries[w] = e
	ix.tree.Insert(e)
}

// Remove deletes w and reports whether it was indexed.
func (ix *Index) Remove(w *Waypoint) bool {
	e, ok := ix.entries[w]
	if !ok {
		return false
	}
	delete(ix.entries, w)
	return ix.tree.Delete(e)
}

// Nearest returns the indexed waypoint closest to target whose distance is
// strictly less than maxDistance, skipping exclude. Ties go to the waypoint
// inserted first, matching [NearestWaypoint] over the insertion order.
func (ix *Index) Nearest(target orb.Point, maxDistance float64, exclude ...*Waypoint) *Waypoint {
	if maxDistance <= 0 || len(ix.entries) == 0 {
		return nil
	}
	query, err := rtreego.NewRect(
		rtreego.Point{target[0] - maxDistance, target[1] - maxDistance},
		[]float64{2 * maxDistance, 2 * maxDistance},
	)
	if err != nil {
		return nil
	}

	hits := ix.tree.SearchIntersect(query)
	entries := make([]*indexEntry, 0, len(hits))
	for _, h := range hits {
		entries = append(entries, h.(*indexEntry))
	}
	slices.SortFunc(entries, func(a, b *indexEntry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	candidates := make([]*Waypoint, len(entries))
	for i, e := range entries {
		candidates[i] = e.waypoint
	}
	return NearestWaypoint(candidates, target, maxDistance, exclude...)
}
