// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/multimodal/internal/domain/media"
	"github.com/okian/multimodal/pkg/logger"
	"github.com/okian/multimodal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default request limits.
const (
	defaultMaxUploadBytes  = 32 << 20
	defaultMultipartMemory = 8 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProcessText(ctx context.Context, text string) media.TextStats
	ProcessImage(ctx context.Context, u media.Upload) (media.ImageInfo, error)
	ProcessAudio(ctx context.Context, u media.Upload) media.FileInfo
	ProcessVideo(ctx context.Context, u media.Upload) media.FileInfo
	ProcessMultimodal(ctx context.Context, in media.MultimodalInput) (media.Summary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler       *RootHandler
	healthHandler     *HealthHandler
	textHandler       *TextHandler
	imageHandler      *ImageHandler
	audioHandler      *MediaHandler
	videoHandler      *MediaHandler
	multimodalHandler *MultimodalHandler

	limits         uploadLimits
	allowedOrigins []string
	metricsEnabled bool
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxUploadBytes caps the request body size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.limits.maxBytes = n
		}
	}
}

// WithMultipartMemory sets how much of a multipart body is kept in memory.
func WithMultipartMemory(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.limits.memory = n
		}
	}
}

// WithAllowedOrigins sets the CORS origins; "*" allows any.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithMetricsEndpoint toggles GET /metrics.
func WithMetricsEndpoint(enabled bool) Option {
	return func(s *Server) {
		s.metricsEnabled = enabled
	}
}

// WithLogger sets the logger used by middleware and handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		limits:         uploadLimits{maxBytes: defaultMaxUploadBytes, memory: defaultMultipartMemory},
		allowedOrigins: []string{"*"},
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("api")
	}

	s.rootHandler = NewRootHandler()
	s.healthHandler = NewHealthHandler()
	s.textHandler = NewTextHandler(deps)
	s.imageHandler = NewImageHandler(deps, s.limits)
	s.audioHandler = NewAudioHandler(deps, s.limits)
	s.videoHandler = NewVideoHandler(deps, s.limits)
	s.multimodalHandler = NewMultimodalHandler(deps, s.limits)
	return s
}

// Register attaches all HTTP routes to mux. Method patterns make the mux
// answer 405 for a known path with the wrong method.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	mux.HandleFunc("GET /health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("POST /text", MetricsMiddleware(s.textHandler.HandleText, "text"))
	mux.HandleFunc("POST /image", MetricsMiddleware(s.imageHandler.HandleImage, "image"))
	mux.HandleFunc("POST /audio", MetricsMiddleware(s.audioHandler.HandleMedia, "audio"))
	mux.HandleFunc("POST /video", MetricsMiddleware(s.videoHandler.HandleMedia, "video"))
	mux.HandleFunc("POST /multimodal", MetricsMiddleware(s.multimodalHandler.HandleMultimodal, "multimodal"))

	if s.metricsEnabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}
}

// Handler wraps next with the server middleware chain, outermost first:
// CORS, request ID, access log, panic recovery, body limit.
func (s *Server) Handler(next http.Handler) http.Handler {
	h := LimitBody(s.limits.maxBytes)(next)
	h = Recover(s.logger)(h)
	h = AccessLog(s.logger)(h)
	h = RequestID(h)
	return CORS(s.allowedOrigins)(h)
}

// envelope is the uniform response wrapper for POST endpoints.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: message, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, l logger.Logger, err error) {
	status := statusFor(err)
	l.Warn(ctx, "request failed", logger.Int("status", status), logger.Error(err))
	writeJSON(w, status, envelope{Status: "error", Message: err.Error()})
}
