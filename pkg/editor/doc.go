// Package editor turns pointer gestures into edits of a path bundle.
//
// # Gestures
//
// A [Session] receives press, move and release events with their position
// and a monotonic timestamp:
//
//   - Press near an existing waypoint (closer than MaxDistance) starts a
//     stroke from it.
//   - Press in empty space within DoubleTap of the previous empty-space
//     press creates a new path rooted at the press point and starts a
//     stroke from it. Any other empty-space press starts a pan, and the
//     moves that follow it are ignored.
//   - Move farther than MinDistance from the stroke head adds a waypoint to
//     the head's path, links it to the head and makes it the new head.
//   - Release connects the head to the nearest other waypoint within
//     MaxDistance, merging paths when they differ, and ends the stroke.
//
// Searches made during a stroke skip the head and the waypoint before it so
// that a stroke never snaps back onto itself.
//
// # Scripts
//
// [ParseScript] reads gestures from text, one event per line:
//
//	# double tap to start a path, then drag east
//	down 100 100 0
//	up   100 100 50
//	down 100 100 200
//	move 140 100 250
//	move 180 100 300
//	up   180 100 350
//
// The last field is the time in milliseconds and may be omitted, in which
// case the event happens at the time of the previous one. [Session.Replay]
// applies a parsed script.
package editor
