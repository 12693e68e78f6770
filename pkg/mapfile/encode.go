package mapfile

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
)

// Delimiters of the map format.
const (
	bundleDelim   = '$'
	pathOpen      = '<'
	pathClose     = '>'
	waypointOpen  = '{'
	waypointClose = '}'
	coordOpen     = '('
	coordSep      = ','
	coordClose    = ')'
	edgeOpen      = '['
	edgeClose     = ']'
)

// Encode returns the map text for b.
func Encode(b *pathgraph.Bundle) string {
	return string(Marshal(b))
}

// Marshal returns the map text for b as bytes. A nil bundle encodes as "$$".
func Marshal(b *pathgraph.Bundle) []byte {
	return appendBundle(nil, b)
}

// Write encodes b to w.
// The output can be read back with [Read] into an equal bundle.
func Write(b *pathgraph.Bundle, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Marshal(b)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write map")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write map")
	}
	return nil
}

// ExportFile writes b to a file at path, replacing any existing file.
// This is a convenience wrapper around [Write] for file-based output.
func ExportFile(b *pathgraph.Bundle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	if err := Write(b, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "close %s", path)
	}
	return nil
}

func appendBundle(buf []byte, b *pathgraph.Bundle) []byte {
	buf = append(buf, bundleDelim)
	if b != nil {
		for _, p := range b.Paths() {
			buf = appendPath(buf, p)
		}
	}
	return append(buf, bundleDelim)
}

func appendPath(buf []byte, p *pathgraph.Path) []byte {
	buf = append(buf, pathOpen)
	for _, w := range p.Waypoints() {
		buf = appendWaypoint(buf, w)
	}
	return append(buf, pathClose)
}

func appendWaypoint(buf []byte, w *pathgraph.Waypoint) []byte {
	buf = append(buf, waypointOpen)
	buf = strconv.AppendInt(buf, int64(w.ID), 10)
	buf = append(buf, coordOpen)
	buf = strconv.AppendInt(buf, int64(w.X), 10)
	buf = append(buf, coordSep)
	buf = strconv.AppendInt(buf, int64(w.Y), 10)
	buf = append(buf, coordClose)
	for _, e := range w.Edges() {
		buf = append(buf, edgeOpen)
		buf = strconv.AppendInt(buf, int64(e.Target), 10)
		buf = append(buf, edgeClose)
	}
	return append(buf, waypointClose)
}

// Size returns the length in bytes of the encoding of b.
func Size(b *pathgraph.Bundle) int {
	return len(Marshal(b))
}
