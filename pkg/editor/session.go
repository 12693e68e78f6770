package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/observability"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/store"
)

// Options configures gesture thresholds.
type Options struct {
	MinDistance float64       // Stroke spacing between consecutive waypoints
	MaxDistance float64       // Snap radius for selecting and connecting
	DoubleTap   time.Duration // Window for a new-path double tap
	Logger      *log.Logger   // Defaults to log.Default()
}

// DefaultOptions returns the stock thresholds: 30, 50 and 500ms.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Editor)
}

// OptionsFromConfig converts the editor configuration section.
func OptionsFromConfig(cfg config.EditorConfig) Options {
	return Options{
		MinDistance: cfg.MinDistance,
		MaxDistance: cfg.MaxDistance,
		DoubleTap:   cfg.DoubleTap(),
	}
}

// Action reports what an event did.
type Action int

const (
	ActionNone       Action = iota // Event ignored
	ActionSelect                   // Stroke started from an existing waypoint
	ActionCreatePath               // New path created by a double tap
	ActionPan                      // Empty-space press, pan started
	ActionExtend                   // Waypoint added to the stroke
	ActionConnect                  // Stroke ended by connecting to a waypoint
	ActionEnd                      // Stroke or pan ended without connecting
)

var actionNames = [...]string{"none", "select", "create-path", "pan", "extend", "connect", "end"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Session is a single editor over one bundle.
//
// A Session is not safe for concurrent use.
type Session struct {
	opts   Options
	logger *log.Logger

	bundle *pathgraph.Bundle
	index  *pathgraph.Index

	head     *pathgraph.Waypoint
	parent   *pathgraph.Waypoint
	dragging bool
	tapped   bool
	lastTap  time.Duration
}

// NewSession creates a session over an empty bundle.
// Zero thresholds in opts are replaced by the defaults.
func NewSession(opts Options) *Session {
	def := DefaultOptions()
	if opts.MinDistance <= 0 {
		opts.MinDistance = def.MinDistance
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = def.MaxDistance
	}
	if opts.DoubleTap <= 0 {
		opts.DoubleTap = def.DoubleTap
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{opts: opts, logger: logger}
	s.SetBundle(pathgraph.NewBundle())
	return s
}

// Bundle returns the bundle being edited.
func (s *Session) Bundle() *pathgraph.Bundle { return s.bundle }

// SetBundle replaces the bundle, rebuilds the search index and drops any
// stroke in progress.
func (s *Session) SetBundle(b *pathgraph.Bundle) {
	s.bundle = b
	s.index = pathgraph.NewIndex(b)
	s.resetStroke()
	s.tapped = false
}

// Clear replaces the bundle with an empty one.
func (s *Session) Clear() {
	s.SetBundle(pathgraph.NewBundle())
}

// Load replaces the bundle with the map stored under name. On any failure
// the current bundle is kept.
func (s *Session) Load(ctx context.Context, st store.Store, name string) error {
	b, err := store.Load(ctx, st, name)
	if err != nil {
		return err
	}
	s.SetBundle(b)
	s.logger.Debug("loaded map", "name", name, "paths", b.Len(), "waypoints", b.WaypointCount())
	return nil
}

// Save stores the bundle under name and returns the normalized name.
// An empty bundle is not saved.
func (s *Session) Save(ctx context.Context, st store.Store, name string) (string, error) {
	saved, err := store.Save(ctx, st, name, s.bundle)
	if err != nil {
		return saved, err
	}
	s.logger.Debug("saved map", "name", saved, "paths", s.bundle.Len(), "waypoints", s.bundle.WaypointCount())
	return saved, nil
}

// Stroking reports whether a stroke is in progress.
func (s *Session) Stroking() bool { return s.head != nil }

// Press handles a pointer press at (x, y) at time at.
func (s *Session) Press(ctx context.Context, x, y int, at time.Duration) (Action, error) {
	pt := orb.Point{float64(x), float64(y)}
	if near := s.nearest(pt); near != nil {
		s.head = near
		s.logger.Debug("stroke from waypoint", "id", near.ID, "path", near.PathID())
		return ActionSelect, nil
	}

	doubleTap := s.tapped && at-s.lastTap < s.opts.DoubleTap
	s.tapped = true
	s.lastTap = at
	if !doubleTap {
		s.dragging = true
		return ActionPan, nil
	}

	w := pathgraph.NewWaypoint(x, y)
	s.bundle.CreatePath(w)
	s.index.Insert(w)
	s.head = w
	s.logger.Debug("new path", "x", x, "y", y, "paths", s.bundle.Len())
	observability.Edit().OnPathCreated(ctx, s.bundle.Len(), x, y)
	return ActionCreatePath, nil
}

// Move handles pointer motion to (x, y).
func (s *Session) Move(ctx context.Context, x, y int, at time.Duration) (Action, error) {
	if s.dragging || s.head == nil {
		return ActionNone, nil
	}
	if s.head.Distance(orb.Point{float64(x), float64(y)}) <= s.opts.MinDistance {
		return ActionNone, nil
	}

	p := s.bundle.PathOf(s.head)
	if p == nil {
		return ActionNone, errors.New(errors.ErrCodeNotMember, "stroke head %d is not part of the bundle", s.head.ID)
	}
	w := pathgraph.NewWaypoint(x, y)
	s.bundle.AddWaypointToPath(p, w)
	s.index.Insert(w)
	if err := s.connect(ctx, w, s.head); err != nil {
		return ActionNone, err
	}
	s.parent = s.head
	s.head = w
	return ActionExtend, nil
}

// Release handles the end of a gesture at (x, y).
func (s *Session) Release(ctx context.Context, x, y int, at time.Duration) (Action, error) {
	if s.dragging {
		s.dragging = false
		return ActionEnd, nil
	}
	if s.head == nil {
		return ActionNone, nil
	}
	defer s.resetStroke()

	near := s.nearest(orb.Point{float64(x), float64(y)})
	if near == nil {
		return ActionEnd, nil
	}
	if err := s.connect(ctx, s.head, near); err != nil {
		return ActionNone, err
	}
	return ActionConnect, nil
}

func (s *Session) nearest(pt orb.Point) *pathgraph.Waypoint {
	return s.index.Nearest(pt, s.opts.MaxDistance, s.head, s.parent)
}

func (s *Session) connect(ctx context.Context, a, b *pathgraph.Waypoint) error {
	conn, err := s.bundle.Connect(a, b)
	if err != nil {
		return err
	}
	if conn.Merged {
		s.logger.Debug("merged paths", "into", conn.Path, "offset", conn.Offset, "paths", s.bundle.Len())
	}
	observability.Edit().OnConnect(ctx, conn.Merged, conn.Added)
	return nil
}

func (s *Session) resetStroke() {
	s.head = nil
	s.parent = nil
	s.dragging = false
}
