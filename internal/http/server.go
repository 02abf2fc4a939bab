// Package http exposes the budget services as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/category"
)

type Server struct {
	http.Server
	data       *budget.DataService
	planned    *budget.PlannedBudgetService
	categories *category.Service
	monthly    *budget.MonthlyBudgetService
	expInc     *budget.ExpensesIncomeService
	weekly     *budget.WeeklyExpensesService

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer wires the services into a ready-to-run JSON API server.
func NewServer(addr string, data *budget.DataService, planned *budget.PlannedBudgetService, categories *category.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		data:        data,
		planned:     planned,
		categories:  categories,
		monthly:     budget.NewMonthlyBudgetService(data),
		expInc:      budget.NewExpensesIncomeService(data, planned, categories),
		weekly:      budget.NewWeeklyExpensesService(data, planned, categories),
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/budget-data", s.withRequestLogging(s.handleGetBudgetData))
	mux.HandleFunc("PUT /api/budget-data", s.withRequestLogging(s.handlePutBudgetData))

	mux.HandleFunc("GET /api/transactions", s.withRequestLogging(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withRequestLogging(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withRequestLogging(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withRequestLogging(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/expenses", s.withRequestLogging(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withRequestLogging(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withRequestLogging(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withRequestLogging(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/planned-budgets", s.withRequestLogging(s.handleListPlannedBudgets))
	// Upsert semantics make POST and PUT the same operation here.
	mux.HandleFunc("POST /api/planned-budgets", s.withRequestLogging(s.handleSetPlannedBudget))
	mux.HandleFunc("PUT /api/planned-budgets", s.withRequestLogging(s.handleSetPlannedBudget))
	mux.HandleFunc("DELETE /api/planned-budgets/{id}", s.withRequestLogging(s.handleDeletePlannedBudget))

	mux.HandleFunc("GET /api/categories", s.withRequestLogging(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withRequestLogging(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.withRequestLogging(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withRequestLogging(s.handleDeleteCategory))
	mux.HandleFunc("GET /api/categories/defaults", s.withRequestLogging(s.handleAvailableDefaults))
	mux.HandleFunc("GET /api/categories/palette", s.withRequestLogging(s.handleColorPalette))

	mux.HandleFunc("GET /api/summary/monthly", s.withRequestLogging(s.handleMonthlySummary))
	mux.HandleFunc("GET /api/summary/expenses-income", s.withRequestLogging(s.handleExpensesIncomeSummary))
	mux.HandleFunc("GET /api/summary/weekly", s.withRequestLogging(s.handleWeeklyExpenses))

	return s
}

// Shutdown stops the HTTP server and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

type requestIDKey struct{}

// withRequestLogging adds request IDs, request logging, rate limiting for
// mutating methods, and baseline security headers.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", ip)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", ip, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", ip)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
