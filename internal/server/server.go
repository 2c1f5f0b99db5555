// Package server serves collage renders and layout previews over HTTP.
//
// Routes:
//
//	GET /collage.{png,jpg,gif}  the composed collage
//	GET /thumb.jpg              a JPEG thumbnail of the collage
//	GET /layouts                the layout presets as JSON
//	GET /layouts/{descriptor}   one layout's cells as JSON, or a preview image
//	GET /healthz                liveness
//
// Query parameters override the server's defaults per request: layout,
// aspect, radius, background and scale on the collage routes; size on
// /thumb.jpg; aspect, width and format on /layouts/{descriptor}. Every render
// goes through a pipeline.Runner, so repeated requests are served from
// its cache.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/scene"
)

// Server renders collages for HTTP clients.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
	router chi.Router

	// renders bounds concurrent pipeline runs; each holds decoded photos.
	renders chan struct{}

	mu       sync.RWMutex
	rendered int
}

// New creates a server whose collage routes render base, adjusted by
// request parameters. base.Sources may be empty, in which case the
// placeholder photo is used.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		base:    base,
		logger:  logger,
		renders: make(chan struct{}, 2),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/collage.{ext}", s.handleCollage)
	r.Get("/thumb.jpg", s.handleThumb)
	r.Get("/layouts", s.handlePresets)
	r.Get("/layouts/*", s.handleLayout)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Rendered returns how many collages were composed rather than served
// from the cache.
func (s *Server) Rendered() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rendered
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur,
			"request_id", middleware.GetReqID(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleCollage(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "ext")
	if format == "jpeg" {
		format = pipeline.FormatJPEG
	}
	if format == pipeline.FormatThumb || !pipeline.ValidFormats[format] {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format))
		return
	}
	s.serveRender(w, r, format, nil)
}

func (s *Server) handleThumb(w http.ResponseWriter, r *http.Request) {
	s.serveRender(w, r, pipeline.FormatThumb, func(opts *pipeline.Options) error {
		if v := r.URL.Query().Get("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "invalid size: %s", v)
			}
			opts.ThumbSize = n
		}
		return nil
	})
}

// serveRender runs the pipeline for one format and writes the artifact.
func (s *Server) serveRender(w http.ResponseWriter, r *http.Request, format string, adjust func(*pipeline.Options) error) {
	opts, err := s.requestOptions(r)
	if err == nil && adjust != nil {
		err = adjust(&opts)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	select {
	case s.renders <- struct{}{}:
		defer func() { <-s.renders }()
	case <-r.Context().Done():
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !result.CacheInfo.RenderHit {
		s.mu.Lock()
		s.rendered++
		s.mu.Unlock()
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Collage-Frames", strconv.Itoa(result.Stats.Frames))
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(result.Artifacts[format])
}

// requestOptions overlays query parameters on the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	opts.Sources = append([]string(nil), s.base.Sources...)
	q := r.URL.Query()

	if v := q.Get("layout"); v != "" {
		if i := layout.FindPreset(v); i >= 0 {
			v = layout.Presets[i].Descriptor.String()
		}
		opts.Layout = v
	}
	if v := q.Get("aspect"); v != "" {
		opts.Aspect = v
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if v := q.Get("radius"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid radius: %s", v)
		}
		opts.Radius = &f
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale: %s", v)
		}
		opts.Scale = f
	}
	opts.Refresh = q.Get("refresh") == "1" || q.Get("refresh") == "true"
	return opts, nil
}

// presetJSON is one entry of the /layouts response.
type presetJSON struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
	Frames     int    `json:"frames"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]presetJSON, len(layout.Presets))
	for i, p := range layout.Presets {
		out[i] = presetJSON{Name: p.Name, Descriptor: p.Descriptor.String(), Frames: p.Descriptor.Count()}
	}
	writeJSON(w, http.StatusOK, out)
}

// cellJSON is one frame slot of a /layouts/{descriptor} response.
type cellJSON struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type layoutJSON struct {
	Descriptor string     `json:"descriptor"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Cells      []cellJSON `json:"cells"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	spec := chi.URLParam(r, "*")
	desc, err := parseLayout(spec)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	aspectStr := q.Get("aspect")
	if aspectStr == "" {
		aspectStr = s.base.Aspect
	}
	if aspectStr == "" {
		aspectStr = pipeline.DefaultAspect
	}
	aspect, err := scene.ParseAspectRatio(aspectStr)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	width := float64(scene.DefaultCanvasWidth)
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid width: %s", v))
			return
		}
		width = float64(n)
	}
	canvas := scene.NewCanvas(width, aspect)
	pw, ph := canvas.PixelSize()

	format := q.Get("format")
	if format == "" || format == "json" {
		cells, err := layout.Compute(desc, canvas.Width, canvas.Height, blankSources{})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out := layoutJSON{Descriptor: desc.String(), Width: pw, Height: ph, Cells: make([]cellJSON, len(cells))}
		for i, c := range cells {
			out.Cells[i] = cellJSON{Index: c.Index, X: c.Rect.Left, Y: c.Rect.Top, Width: c.Rect.Width(), Height: c.Rect.Height()}
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	data, hit, err := s.runner.RenderLayout(r.Context(), desc.String(), pw, ph, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", layoutContentType(format))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(data)
}

// errorJSON is the body of every error response.
type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail writes err as JSON with a status derived from its code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorJSON{Code: string(code), Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidAspect, errors.ErrCodeInvalidPath, errors.ErrCodeEmptyInput:
		return http.StatusBadRequest
	case errors.ErrCodeImageLoad:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatJPEG, pipeline.FormatThumb:
		return "image/jpeg"
	case pipeline.FormatGIF:
		return "image/gif"
	default:
		return "image/png"
	}
}

func layoutContentType(format string) string {
	switch format {
	case pipeline.LayoutFormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case pipeline.LayoutFormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// parseLayout accepts a descriptor or a preset name.
func parseLayout(spec string) (layout.Descriptor, error) {
	if i := layout.FindPreset(spec); i >= 0 {
		return layout.Presets[i].Descriptor, nil
	}
	return layout.Parse(spec)
}

type blankSources struct{}

func (blankSources) Next() string { return "" }
