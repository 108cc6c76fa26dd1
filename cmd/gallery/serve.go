package main

import (
	"context"

	ghttp "github.com/fwojciec/gallery/http"
	"github.com/fwojciec/gallery/lru"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the context is canceled,
// then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := ghttp.NewServer()
	s.Addr = c.Addr
	s.MaxConns = c.MaxConns
	s.Logger = deps.Logger
	s.SearchService = lru.NewSearchService(deps.Search,
		lru.WithSize(c.CacheSize),
		lru.WithSearchTTL(c.CacheTTL),
	)
	if c.RateLimit > 0 {
		s.Limiter = ghttp.NewClientLimiter(c.RateLimit, c.Burst)
	}

	if err := s.Open(); err != nil {
		return err
	}
	deps.Logger.Info("listening", "url", s.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(s.Serve)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ghttp.DefaultShutdownTimeout)
		defer cancel()
		deps.Logger.Info("shutting down")
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
