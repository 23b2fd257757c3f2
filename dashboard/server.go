// Package dashboard serves the four tools as html pages with echarts plots and as a json api
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aouyang1/go-multitool"
	"github.com/goccy/go-json"
)

var ErrNoToolkit = errors.New("no toolkit to serve")

// Options configures the http listener
type Options struct {
	Addr              string        `json:"addr" mapstructure:"addr"`
	MetricsEnabled    bool          `json:"metrics_enabled" mapstructure:"metrics_enabled"`
	MetricsPath       string        `json:"metrics_path" mapstructure:"metrics_path"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

func NewDefaultOptions() *Options {
	return &Options{
		Addr:              ":8501",
		MetricsEnabled:    true,
		MetricsPath:       "/metrics",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Server renders the tools of a single shared Toolkit. Every request is evaluated independently,
// the server keeps no per user state.
type Server struct {
	opt     *Options
	tk      *multitool.Toolkit
	logger  *slog.Logger
	metrics *Metrics
	handler http.Handler
}

// New creates a server for the toolkit. A nil logger discards logs and nil options use the defaults.
func New(tk *multitool.Toolkit, opt *Options, logger *slog.Logger) (*Server, error) {
	if tk == nil {
		return nil, ErrNoToolkit
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		opt:     opt,
		tk:      tk,
		logger:  logger,
		metrics: NewMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/{mode}", s.handleAPI)
	mux.HandleFunc("GET /api/{mode}/model", s.handleModel)
	mux.HandleFunc("GET /{mode}", s.handlePage)
	if opt.MetricsEnabled && opt.MetricsPath != "" {
		mux.Handle("GET "+opt.MetricsPath, s.metrics.Handler())
	}
	s.handler = s.logRequests(mux)
	return s, nil
}

// Handler returns the root handler including request logging
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.opt.Addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s, %w", s.opt.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis until ctx is cancelled
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.opt.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opt.ShutdownTimeout)
	defer cancel()
	s.logger.Info("dashboard shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shutdown dashboard, %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := RenderIndex(&buf); err != nil {
		s.logger.Error("unable to render index", "error", err)
		http.Error(w, "unable to render index", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	mode, err := multitool.ParseMode(r.PathValue("mode"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	res, err := render(&buf, s.tk, mode, r.URL.Query())
	result := outcome(res, err)
	s.metrics.observeRequest(string(mode), result, time.Since(start).Seconds())

	status := http.StatusOK
	switch result {
	case resultInvalidInput:
		status = http.StatusBadRequest
	case resultError:
		s.logger.Error("unable to render page", "mode", mode, "error", err)
		http.Error(w, "unable to render page", http.StatusInternalServerError)
		return
	}
	if val, ok := prediction(res); ok {
		s.metrics.observePrediction(string(mode), val)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	mode, err := multitool.ParseMode(r.PathValue("mode"))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
		return
	}

	start := time.Now()
	res, err := Evaluate(s.tk, mode, r.URL.Query())
	result := outcome(res, err)
	s.metrics.observeRequest(string(mode), result, time.Since(start).Seconds())

	switch result {
	case resultInvalidInput:
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	case resultError:
		s.logger.Error("unable to evaluate tool", "mode", mode, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
		return
	}
	if val, ok := prediction(res); ok {
		s.metrics.observePrediction(string(mode), val)
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleModel returns the fitted model of a regression tool
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	mode, err := multitool.ParseMode(r.PathValue("mode"))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
		return
	}
	switch mode {
	case multitool.ModeMarks:
		s.writeJSON(w, http.StatusOK, s.tk.MarksPredictor().Model())
	case multitool.ModeRent:
		s.writeJSON(w, http.StatusOK, s.tk.RentPredictor().Model())
	default:
		s.writeJSON(w, http.StatusNotFound, apiError{Error: fmt.Sprintf("%s has no regression model", mode)})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("unable to marshal response", "error", err)
		http.Error(w, "unable to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(bytes, '\n'))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
