package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort = 8000
)

type Server struct {
	port   int
	stage  string
	router *chi.Mux
}

type Option func(*Server) error

// NewServer mounts the websocket endpoint of rp under /battleship.
func NewServer(rp RequestProcessor, optFuncs ...Option) (*Server, error) {
	server := Server{port: defaultPort, stage: StageDev}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	server.router = newRouter(rp)
	return &server, nil
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func newRouter(rp RequestProcessor) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/analytics", rp.ServeAnalytics)
	r.Method(http.MethodGet, "/battleship", rp)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.port)
}

func (s *Server) HttpServer() *http.Server {
	return &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: time.Second * 5,
	}
}

func (s *Server) Stage() string {
	return s.stage
}
