package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/collage/pkg/buildinfo"
	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type catalogResponse struct {
	Categories []string          `json:"categories"`
	Images     []catalog.Image   `json:"images"`
	Projects   []catalog.Project `json:"projects"`
}

type projectResponse struct {
	catalog.Project
	Items []catalog.Image `json:"items"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error's code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presets.All())
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	cfg, err := presets.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.source.Get()
	writeJSON(w, http.StatusOK, catalogResponse{
		Categories: c.Categories(),
		Images:     c.Filter(r.URL.Query().Get("category")),
		Projects:   c.Projects,
	})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	c := s.source.Get()
	slug := chi.URLParam(r, "slug")
	p, err := c.Project(slug)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := c.ProjectImages(slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse{Project: p, Items: items})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// options builds pipeline options from the route and query string.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Preset:   chi.URLParam(r, "preset"),
		Category: q.Get("category"),
		Project:  q.Get("project"),
		Catalog:  s.source.Get(),
		Logger:   s.logger,
	}

	if v := q.Get("focus"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "focus must be an integer, got %q", v)
		}
		opts.Focus = pipeline.FocusOn(i)
	}
	if v := q.Get("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "width must be a number, got %q", v)
		}
		opts.Width = f
	}
	if v := q.Get("images"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "images must be a boolean, got %q", v)
		}
		opts.Images = b
	}
	return opts, nil
}
