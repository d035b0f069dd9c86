package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"salesdash/internal/core"
	applog "salesdash/internal/log"
	"salesdash/internal/middleware/security"
	"salesdash/internal/middleware/trace"
)

// StatsService computes the month aggregates served by the API.
type StatsService interface {
	Statistics(ctx context.Context, month core.Month) (core.Statistics, error)
	BarChart(ctx context.Context, month core.Month) ([]core.PriceRangeCount, error)
	PieChart(ctx context.Context, month core.Month) ([]core.CategoryCount, error)
	Combined(ctx context.Context, month core.Month) (core.MonthOverview, error)
}

// StoreChecker is used by readiness and metrics.
type StoreChecker interface {
	Ping(ctx context.Context) error
	CountProducts(ctx context.Context) (int64, error)
}

type Server struct {
	http.Server
	stats    StatsService
	store    StoreChecker
	clientIP *security.ClientIPResolver

	traceMiddleware *trace.Middleware
	appMetrics      *appMetrics

	shutdownOnce sync.Once
}

type appMetrics struct {
	uptime time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, svc StatsService, store StoreChecker, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	mux := http.NewServeMux()
	clientIP := security.NewClientIPResolver()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		stats:           svc,
		store:           store,
		clientIP:        clientIP,
		traceMiddleware: trace.NewMiddleware(logger, clientIP.ExtractClientIP),
		appMetrics:      &appMetrics{uptime: time.Now()},
	}

	mux.HandleFunc("/api/statistics", s.handleStatistics)
	mux.HandleFunc("/api/bar-chart", s.handleBarChart)
	mux.HandleFunc("/api/pie-chart", s.handlePieChart)
	mux.HandleFunc("/api/combined-data", s.handleCombined)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	var handler http.Handler = mux
	handler = headers.Middleware(handler)
	handler = applog.Middleware(logger)(handler)
	handler = s.traceMiddleware.Middleware(handler)
	s.Handler = handler

	return s
}

// TrustProxies adds networks whose X-Forwarded-For and X-Real-IP headers are
// believed, on top of loopback and private ranges.
func (s *Server) TrustProxies(cidrs []string) error {
	for _, cidr := range cidrs {
		if err := s.clientIP.AddTrustedProxy(cidr); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
