package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/orbit/pkg/buildinfo"
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/pipeline"
	"github.com/matzehuels/orbit/pkg/store"
)

// contentTypes maps artifact formats to media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

const cacheHeader = "X-Orbit-Cache"

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// createLayout handles POST /api/v1/layout.
func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := s.options(req.Options)
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), req.Graph, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	id, err := s.store.Save(r.Context(), l)
	if err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}
	l.ID = id

	s.logger.Info("created layout", "id", id, "nodes", len(l.Nodes), "cached", hit)
	w.Header().Set("Location", "/api/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, LayoutResponse{
		ID:        id,
		GraphHash: pipeline.GraphHash(req.Graph),
		Cached:    hit,
		Layout:    l,
	})
}

// getLayout handles GET /api/v1/layouts/{id}.
func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	l, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// render handles POST /api/v1/render. A single requested format is
// returned as the raw artifact; several come back as a JSON object.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := s.options(req.Options)
	l, err := s.resolveLayout(r, &req, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts.SetRenderDefaults()
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set(cacheHeader, cacheStatus(hit))
	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		data := artifacts[format]
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{Artifacts: artifacts, Cached: hit})
}

func (s *Server) resolveLayout(r *http.Request, req *RenderRequest, opts pipeline.Options) (graph.Layout, error) {
	switch {
	case req.LayoutID != "":
		return s.store.Get(r.Context(), req.LayoutID)
	case req.Layout != nil:
		return *req.Layout, nil
	default:
		return s.runner.Layout(r.Context(), req.Graph, opts)
	}
}

// options fills zero request options from the server defaults. Zero
// margins and a false show_labels cannot be told apart from omitted ones
// and also take the default.
func (s *Server) options(req pipeline.Options) pipeline.Options {
	o, d := req, s.defaults
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Margin == 0 {
		o.Margin = d.Margin
	}
	if o.CurveFormula == "" {
		o.CurveFormula = d.CurveFormula
	}
	if len(o.Formats) == 0 {
		o.Formats = d.Formats
	}
	if o.Style == "" {
		o.Style = d.Style
	}
	if o.Engine == "" {
		o.Engine = d.Engine
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = d.NodeRadius
	}
	o.ShowLabels = o.ShowLabels || d.ShowLabels
	o.Logger = s.logger
	return o
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
