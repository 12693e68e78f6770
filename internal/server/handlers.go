package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/pathmaker/pkg/buildinfo"
	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/render/nodelink"
	"github.com/matzehuels/pathmaker/pkg/store"
)

// Stats summarizes a stored map.
type Stats struct {
	Name      string `json:"name"`
	Paths     int    `json:"paths"`
	Waypoints int    `json:"waypoints"`
	Edges     int    `json:"edges"`
	Bytes     int    `json:"bytes"`
	PathSizes []int  `json:"path_sizes"`
}

func statsOf(name string, b *pathgraph.Bundle) Stats {
	st := Stats{
		Name:      name,
		Paths:     b.Len(),
		Waypoints: b.WaypointCount(),
		Edges:     b.EdgeCount(),
		Bytes:     mapfile.Size(b),
		PathSizes: make([]int, 0, b.Len()),
	}
	for _, p := range b.Paths() {
		st.PathSizes = append(st.PathSizes, p.Size())
	}
	return st
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		Store  string `json:"store"`
		buildinfo.Info
	}{"ok", s.store.Backend(), buildinfo.Current()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"maps": names})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := s.readBundle(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := store.Save(r.Context(), s.store, uuid.NewString(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/maps/"+name)
	writeJSON(w, http.StatusCreated, statsOf(name, b))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	b, name, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_ = mapfile.Write(b, w)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	b, err := s.readBundle(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := store.Save(r.Context(), s.store, chi.URLParam(r, "name"), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsOf(name, b))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := store.Remove(r.Context(), s.store, chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	b, name, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statsOf(name, b))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	b, _, ok := s.load(w, r)
	if !ok {
		return
	}
	svg, err := nodelink.Render(r.Context(), b, nodelink.Options{
		Labels:     r.URL.Query().Get("labels") == "true",
		Background: r.URL.Query().Get("bg"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// load resolves the {name} parameter and loads the map. On failure the
// error response has already been written.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*pathgraph.Bundle, string, bool) {
	name, err := errors.NormalizeMapName(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, "", false
	}
	b, err := store.Load(r.Context(), s.store, name)
	if err != nil {
		s.writeError(w, r, err)
		return nil, "", false
	}
	return b, name, true
}

func (s *Server) readBundle(w http.ResponseWriter, r *http.Request) (*pathgraph.Bundle, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return mapfile.Unmarshal(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
