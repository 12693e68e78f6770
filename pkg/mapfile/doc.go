// Package mapfile reads and writes bundles in the map text format.
//
// # Overview
//
// A map file holds a whole [pathgraph.Bundle] as a single line of ASCII with
// no whitespace and no escaping. Every element is framed by its own pair of
// delimiters, so siblings need no separators:
//
//	bundle   := '$' path* '$'
//	path     := '<' waypoint* '>'
//	waypoint := '{' id '(' x ',' y ')' edge* '}'
//	edge     := '[' target ']'
//
// id and target are non-negative base-10 integers; x and y may carry a
// leading '-'. A bundle with one path holding one waypoint at (5,7) is:
//
//	$<{0(5,7)}>$
//
// and two linked waypoints look like:
//
//	$<{0(0,0)[1]}{1(40,0)[0]}>$
//
// # Encoding
//
// Use [Encode] or [Marshal] for in-memory output, [Write] to stream to any
// io.Writer and [ExportFile] to write a file. Paths are emitted in bundle
// order, waypoints in id order and edges in insertion order, so encoding is
// deterministic and the output of a decoded file is byte-identical to its
// input.
//
// # Decoding
//
// [Decode], [Unmarshal], [Read] and [ImportFile] parse strictly left to right.
// Decoding is all-or-nothing: on the first problem the whole call fails with
// a MALFORMED_MAP error wrapping a [*ParseError] that reports the byte offset,
// and no bundle is returned. Beyond the grammar, the decoder rejects a
// waypoint whose id differs from its position in the path, an edge whose
// target is not in the path, numbers that overflow int and any bytes after
// the closing '$'.
//
// "$$" is an empty bundle. "<>" is an empty path; it is accepted so that any
// bundle the engine can hold round-trips.
package mapfile
