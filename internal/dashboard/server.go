// Package dashboard serves the interactive variant of the analysis over HTTP.
// Datasets are loaded and cleaned once; every response is memoized in the
// injected cache under a key combining the data fingerprint and the request
// parameters.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"github.com/ademuri/spotify-eda/internal/cache"
	"github.com/ademuri/spotify-eda/internal/cleaner"
	"github.com/ademuri/spotify-eda/internal/loader"
)

type Options struct {
	// Cache memoizes responses. Defaults to an in-memory LRU cache.
	Cache cache.Cache
	// RequestsPerSecond limits the request rate. Zero disables the limit.
	RequestsPerSecond float64
	Burst             int
	Logger            hclog.Logger
}

type Server struct {
	data        *loader.Datasets
	fingerprint string
	cache       cache.Cache
	limiter     *rate.Limiter
	logger      hclog.Logger
}

// New serves already cleaned datasets. fingerprint identifies their source
// and prefixes every cache key.
func New(ds *loader.Datasets, fingerprint string, opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory(cache.DefaultMemoryEntries)
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Server{
		data:        ds,
		fingerprint: fingerprint,
		cache:       opts.Cache,
		limiter:     rate.NewLimiter(limit, burst),
		logger:      opts.Logger,
	}
}

// Open loads and cleans the sources in dataDir and serves them.
func Open(dataDir string, sources loader.Sources, opts Options) (*Server, error) {
	fingerprint, err := loader.Fingerprint(dataDir, sources)
	if err != nil {
		return nil, err
	}
	raw, err := loader.Load(dataDir, sources)
	if err != nil {
		return nil, err
	}
	return New(cleaner.Clean(raw), fingerprint, opts), nil
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests(), rateLimit(s.limiter))

	api := router.Group("/api")
	{
		api.GET("/filters", s.getFilters)
		api.GET("/tracks", s.getTracks)
		api.GET("/artists", s.getArtists)
		api.GET("/top", s.getTop)
		api.GET("/genres", s.getGenres)
		api.GET("/trend", s.getTrend)
		api.GET("/correlation", s.getCorrelation)
	}
	router.GET("/charts/:name", s.getChart)
	return router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Serving dashboard", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func rateLimit(l *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// respond serves the cached body for key, computing it on a miss. An empty
// body is answered with 204.
func (s *Server) respond(c *gin.Context, contentType string, key string, compute func() ([]byte, error)) {
	body, err := cache.Fetch(s.cache, key, compute)
	if err != nil {
		s.logger.Error("computing response", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(body) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}

func (s *Server) key(endpoint string, params ...any) string {
	return cache.Key(s.fingerprint, append([]any{endpoint}, params...)...)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
