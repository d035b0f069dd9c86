package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	applog "salesdash/internal/log"
)

const queryTimeout = 7 * time.Second

// handleStatistics returns the month totals
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	month := parseMonth(r.URL.Query())
	stats, err := s.stats.Statistics(ctx, month)
	if err != nil {
		s.queryFailed(ctx, w, applog.OpStatistics, month.String(), err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleBarChart returns item counts per price range
func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	month := parseMonth(r.URL.Query())
	buckets, err := s.stats.BarChart(ctx, month)
	if err != nil {
		s.queryFailed(ctx, w, applog.OpBarChart, month.String(), err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

// handlePieChart returns item counts per category
func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	month := parseMonth(r.URL.Query())
	categories, err := s.stats.PieChart(ctx, month)
	if err != nil {
		s.queryFailed(ctx, w, applog.OpPieChart, month.String(), err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleCombined returns all three aggregates in one document
func (s *Server) handleCombined(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	month := parseMonth(r.URL.Query())
	overview, err := s.stats.Combined(ctx, month)
	if err != nil {
		s.queryFailed(ctx, w, applog.OpCombined, month.String(), err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) queryFailed(ctx context.Context, w http.ResponseWriter, op, month string, err error) {
	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogError(ctx, "Aggregation query failed", err, op, applog.NewFields().WithMonth(month))
	writeInternalError(w)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	})
}

// handleReady checks that the database answers
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if err := s.store.Ping(ctx); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Readiness check failed", applog.FieldError, err)
		checks["database"] = "failed"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	traceMetrics := s.traceMiddleware.GetMetrics()
	uptime := time.Since(s.appMetrics.uptime)

	products, err := s.store.CountProducts(ctx)
	if err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Product count for metrics failed", applog.FieldError, err)
		products = -1
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	// Prometheus-like text format
	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_responses_errors_total Responses with an error status\n")
	fmt.Fprintf(w, "# TYPE http_responses_errors_total counter\n")
	fmt.Fprintf(w, "http_responses_errors_total{class=\"4xx\"} %d\n", traceMetrics.ClientErrors)
	fmt.Fprintf(w, "http_responses_errors_total{class=\"5xx\"} %d\n\n", traceMetrics.ServerErrors)

	fmt.Fprintf(w, "# HELP http_last_response_microseconds Duration of the last request\n")
	fmt.Fprintf(w, "# TYPE http_last_response_microseconds gauge\n")
	fmt.Fprintf(w, "http_last_response_microseconds %d\n\n", traceMetrics.LastResponseTime)

	fmt.Fprintf(w, "# HELP products_stored Rows in the products table (-1 when unavailable)\n")
	fmt.Fprintf(w, "# TYPE products_stored gauge\n")
	fmt.Fprintf(w, "products_stored %d\n\n", products)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}
