package mapfile

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
)

// ParseError describes where and why map text failed to decode.
type ParseError struct {
	Offset   int    // Byte offset of the offending input
	Expected string // What the decoder was looking for
	Found    string // What it saw instead ("end of input" at EOF)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: expected %s, found %s", e.Offset, e.Expected, e.Found)
}

// Decode parses map text into a new bundle.
func Decode(text string) (*pathgraph.Bundle, error) {
	return Unmarshal([]byte(text))
}

// Unmarshal parses map text into a new bundle.
//
// Unmarshal returns a MALFORMED_MAP error wrapping a [*ParseError] if data
// is not exactly one well-formed bundle. It never returns a partial bundle:
// paths are only attached to the result once the whole input has parsed.
func Unmarshal(data []byte) (*pathgraph.Bundle, error) {
	d := decoder{data: data}
	paths, err := d.bundle()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedMap, err, "decode map")
	}
	b := pathgraph.NewBundle()
	for _, p := range paths {
		b.AddPath(p)
	}
	return b, nil
}

// Read decodes a bundle from r. Read does not close r.
func Read(r io.Reader) (*pathgraph.Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read map")
	}
	return Unmarshal(data)
}

// ImportFile reads and decodes the map file at path.
//
// A missing file yields a NOT_FOUND error, other I/O failures a
// STORAGE_ERROR, and bad content the same MALFORMED_MAP error as [Unmarshal].
func ImportFile(path string) (*pathgraph.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "map file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s", path)
	}
	b, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	return b, nil
}

// decoder is a recursive-descent parser over the map grammar.
type decoder struct {
	data []byte
	pos  int
}

type pendingEdge struct {
	from, target, offset int
}

func (d *decoder) bundle() ([]*pathgraph.Path, error) {
	if err := d.expect(bundleDelim, "'$' to open the bundle"); err != nil {
		return nil, err
	}
	var paths []*pathgraph.Path
	for d.peek() == pathOpen {
		p, err := d.path()
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := d.expect(bundleDelim, "'<' or '$' to close the bundle"); err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, d.fail("end of input after the closing '$'")
	}
	return paths, nil
}

func (d *decoder) path() (*pathgraph.Path, error) {
	d.pos++ // '<'
	p := &pathgraph.Path{}
	var edges []pendingEdge
	for d.peek() == waypointOpen {
		w, we, err := d.waypoint(p.Size())
		if err != nil {
			return nil, err
		}
		p.AddWaypoint(w)
		edges = append(edges, we...)
	}
	if err := d.expect(pathClose, "'{' or '>' to close the path"); err != nil {
		return nil, err
	}
	for _, e := range edges {
		if e.target >= p.Size() {
			return nil, &ParseError{
				Offset:   e.offset,
				Expected: fmt.Sprintf("edge target below %d", p.Size()),
				Found:    fmt.Sprintf("edge %d->%d", e.from, e.target),
			}
		}
	}
	return p, nil
}

func (d *decoder) waypoint(want int) (*pathgraph.Waypoint, []pendingEdge, error) {
	d.pos++ // '{'
	start := d.pos
	id, err := d.integer(false)
	if err != nil {
		return nil, nil, err
	}
	if id != want {
		return nil, nil, &ParseError{
			Offset:   start,
			Expected: fmt.Sprintf("waypoint id %d", want),
			Found:    strconv.Itoa(id),
		}
	}
	if err := d.expect(coordOpen, "'('"); err != nil {
		return nil, nil, err
	}
	x, err := d.integer(true)
	if err != nil {
		return nil, nil, err
	}
	if err := d.expect(coordSep, "','"); err != nil {
		return nil, nil, err
	}
	y, err := d.integer(true)
	if err != nil {
		return nil, nil, err
	}
	if err := d.expect(coordClose, "')'"); err != nil {
		return nil, nil, err
	}

	w := pathgraph.NewWaypoint(x, y)
	var edges []pendingEdge
	for d.peek() == edgeOpen {
		d.pos++
		offset := d.pos
		target, err := d.integer(false)
		if err != nil {
			return nil, nil, err
		}
		if err := d.expect(edgeClose, "']'"); err != nil {
			return nil, nil, err
		}
		w.AppendEdge(target)
		edges = append(edges, pendingEdge{from: id, target: target, offset: offset})
	}
	if err := d.expect(waypointClose, "'[' or '}' to close the waypoint"); err != nil {
		return nil, nil, err
	}
	return w, edges, nil
}

// integer reads a base-10 int. A leading '-' is accepted only when signed.
func (d *decoder) integer(signed bool) (int, error) {
	start := d.pos
	if signed && d.peek() == '-' {
		d.pos++
	}
	digits := d.pos
	for d.pos < len(d.data) && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
		d.pos++
	}
	if d.pos == digits {
		if signed {
			return 0, d.fail("integer")
		}
		return 0, d.fail("non-negative integer")
	}
	n, err := strconv.Atoi(string(d.data[start:d.pos]))
	if err != nil {
		return 0, &ParseError{Offset: start, Expected: "integer that fits in int", Found: strconv.Quote(string(d.data[start:d.pos]))}
	}
	return n, nil
}

func (d *decoder) peek() byte {
	if d.pos >= len(d.data) {
		return 0
	}
	return d.data[d.pos]
}

func (d *decoder) expect(c byte, what string) error {
	if d.peek() != c || d.pos >= len(d.data) {
		return d.fail(what)
	}
	d.pos++
	return nil
}

func (d *decoder) fail(expected string) *ParseError {
	found := "end of input"
	if d.pos < len(d.data) {
		found = strconv.QuoteRune(rune(d.data[d.pos]))
	}
	return &ParseError{Offset: d.pos, Expected: expected, Found: found}
}
