package editor

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// EventKind is the type of a gesture event.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	}
	return "unknown"
}

// Event is one line of a gesture script.
type Event struct {
	Kind EventKind
	X, Y int
	At   time.Duration
	Line int // 1-based source line, 0 when built in code
}

var eventKinds = map[string]EventKind{
	"down": EventDown,
	"move": EventMove,
	"up":   EventUp,
}

// ParseScript reads a gesture script. Blank lines and lines starting with
// '#' are skipped. Timestamps must not decrease.
func ParseScript(r io.Reader) ([]Event, error) {
	var (
		events []Event
		at     time.Duration
		lineNo int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 && len(fields) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: want \"down|move|up X Y [MS]\", got %q", lineNo, line)
		}
		kind, ok := eventKinds[strings.ToLower(fields[0])]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: unknown event %q", lineNo, fields[0])
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: x", lineNo)
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: y", lineNo)
		}
		if len(fields) == 4 {
			ms, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: time", lineNo)
			}
			t := time.Duration(ms) * time.Millisecond
			if t < at {
				return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: time %dms is before the previous event", lineNo, ms)
			}
			at = t
		}
		events = append(events, Event{Kind: kind, X: x, Y: y, At: at, Line: lineNo})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script")
	}
	return events, nil
}

// Apply dispatches a single event.
func (s *Session) Apply(ctx context.Context, ev Event) (Action, error) {
	switch ev.Kind {
	case EventDown:
		return s.Press(ctx, ev.X, ev.Y, ev.At)
	case EventMove:
		return s.Move(ctx, ev.X, ev.Y, ev.At)
	case EventUp:
		return s.Release(ctx, ev.X, ev.Y, ev.At)
	}
	return ActionNone, errors.New(errors.ErrCodeInvalidInput, "unknown event kind %d", ev.Kind)
}

// Replay applies events in order and returns how often each action
// occurred. It stops at the first error or when ctx is done.
func (s *Session) Replay(ctx context.Context, events []Event) (map[Action]int, error) {
	counts := make(map[Action]int)
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		a, err := s.Apply(ctx, ev)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return counts, errors.Wrap(code, err, "line %d: %s", ev.Line, ev.Kind)
		}
		counts[a]++
	}
	return counts, nil
}
