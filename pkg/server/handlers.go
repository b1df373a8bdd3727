package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/padring/pkg/buildinfo"
	"github.com/matzehuels/padring/pkg/config"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/layoutio"
	"github.com/matzehuels/padring/pkg/pipeline"
	"github.com/matzehuels/padring/pkg/store"
)

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Padring-Cache"

// DefaultListLimit caps GET /v1/layouts when no limit is given.
const DefaultListLimit = 100

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// createResponse is the body of POST /v1/layouts.
type createResponse struct {
	store.Summary
	Cached bool `json:"cached"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.readConfig(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{Refresh: queryBool(r, "refresh"), Logger: s.Logger}
	doc, hit, err := s.Runner.ComputeLayoutWithCacheInfo(r.Context(), cfg, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Store.Save(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+doc.ID)
	w.Header().Set(CacheHeader, cacheStatus(hit))
	writeJSON(w, http.StatusCreated, createResponse{Summary: store.Summarize(doc), Cached: hit})
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidFormat, "invalid limit %q", v))
			return
		}
		limit = n
	}
	items, err := s.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := layoutio.WriteJSON(doc, w); err != nil {
		s.Logger.Warn("write layout", "id", doc.ID, "error", err)
	}
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !pipeline.ValidFormats[format] {
		writeError(w, notFound("unknown format %q", format))
		return
	}
	doc, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:   []string{format},
		Design:    q.Get("design"),
		Pins:      queryBool(r, "pins"),
		Labels:    queryBool(r, "labels"),
		NoFillers: queryBool(r, "no_fillers"),
		Expand:    queryBool(r, "expand"),
		Refresh:   queryBool(r, "refresh"),
		Logger:    s.Logger,
	}
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidFormat, "invalid width %q", v))
			return
		}
		opts.Width = n
	}

	artifacts, hit, err := s.Runner.RenderWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// readConfig decodes the request body as TOML or, for application/json, as
// JSON.
func (s *Server) readConfig(w http.ResponseWriter, r *http.Request) (*config.Config, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read body")
	}

	var cfg *config.Config
	if isJSON(r) {
		cfg, err = config.ParseJSON(data)
	} else {
		cfg, err = config.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	if cfg.LEF != "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "lef files are not accepted over http; define cells inline")
	}
	return cfg, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func queryBool(r *http.Request, name string) bool {
	v, ok := r.URL.Query()[name]
	if !ok {
		return false
	}
	if len(v) == 0 || v[0] == "" {
		return true
	}
	b, err := strconv.ParseBool(v[0])
	return err == nil && b
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
