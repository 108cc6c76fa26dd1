package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/gallery"
	gurl "github.com/fwojciec/gallery/url"
	"golang.org/x/net/netutil"
)

// Server timeouts.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Server serves the gallery JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// Addr is the address to listen on, e.g. ":8080".
	Addr string

	// MaxConns caps concurrent connections. Zero means unlimited.
	MaxConns int

	// Limiter rate limits requests per client. Nil disables limiting.
	Limiter *ClientLimiter

	Logger        *slog.Logger
	SearchService gallery.SearchService
}

// NewServer returns a Server with the API routes registered.
func NewServer() *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/objects/{id}", s.handleObject)
	s.mux.HandleFunc("GET /api/departments", s.handleDepartments)
	s.mux.HandleFunc("/", s.handleNotFound)

	return s
}

// Handler returns the API handler wrapped in the server middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = withRateLimit(s.Limiter, h)
	h = withCORS(h)
	h = withLogging(s.Logger, h)
	h = withRequestID(h)
	return h
}

// Open starts listening on Addr.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	if s.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.MaxConns)
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Serve accepts connections until Shutdown is called. It returns nil after
// a graceful shutdown.
func (s *Server) Serve() error {
	if s.server == nil {
		return gallery.Errorf(gallery.EINVALID, "server is not open")
	}
	if err := s.server.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := s.SearchService.Search(r.Context(), gurl.Decode(r.URL.Query()))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		Error(w, r, s.Logger, gallery.Errorf(gallery.EINVALID, "Invalid object ID."))
		return
	}

	obj, err := s.SearchService.FindObjectByID(r.Context(), id)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, obj)
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.SearchService.FindDepartments(r.Context())
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, s.Logger, gallery.Errorf(gallery.ENOTFOUND, "Not found."))
}
