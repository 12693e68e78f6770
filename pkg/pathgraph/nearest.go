package pathgraph

import (
	"github.com/paulmach/orb"
)

// NearestWaypoint returns the candidate closest to target whose distance is
// strictly less than maxDistance, or nil if none qualifies.
//
// Candidates listed in exclude are skipped; nil entries in either list are
// ignored. On equal distances the earlier candidate wins.
func NearestWaypoint(candidates []*Waypoint, target orb.Point, maxDistance float64, exclude ...*Waypoint) *Waypoint {
	best := maxDistance
	var found *Waypoint
	for _, c := range candidates {
		if c == nil || excluded(c, exclude) {
			continue
		}
		if d := c.Distance(target); d < best {
			best = d
			found = c
		}
	}
	return found
}

func excluded(w *Waypoint, exclude []*Waypoint) bool {
	for _, x := range exclude {
		if x == w {
			return true
		}
	}
	return false
}
