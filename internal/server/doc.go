// Package server exposes a map store over HTTP.
//
// # Routes
//
//	GET    /healthz             build info
//	GET    /maps                stored map names
//	POST   /maps                store a map under a generated name
//	GET    /maps/{name}         map text
//	PUT    /maps/{name}         store a map
//	DELETE /maps/{name}         remove a map
//	GET    /maps/{name}/stats   path, waypoint and edge counts
//	GET    /maps/{name}/svg     node-link drawing
//
// Map bodies use the text format of [mapfile]. A body is decoded in full
// before anything is written, so a malformed map never reaches the store
// and is answered with 422.
//
// Errors are JSON objects carrying the error code and a readable message:
//
//	{"code": "NOT_FOUND", "message": "map lab.map not found"}
//
// [mapfile]: github.com/matzehuels/pathmaker/pkg/mapfile
package server
