// Package http exposes the JSON API and the embedded UI.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/babburibeiro/WebAppCashUp/internal/cache"
	"github.com/babburibeiro/WebAppCashUp/internal/config"
	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/middleware/ratelimit"
	"github.com/babburibeiro/WebAppCashUp/internal/middleware/security"
	"github.com/babburibeiro/WebAppCashUp/internal/middleware/trace"
	"github.com/babburibeiro/WebAppCashUp/internal/services"
	appweb "github.com/babburibeiro/WebAppCashUp/web"
)

// Cache key prefixes for derived payloads. Writes invalidate by
// prefix, so every cached month is dropped at once.
const (
	overviewKeyPrefix = "overview:"
	trendKeyPrefix    = "trend:"
)

// Server serves the API and the embedded UI. Derived report payloads
// are cached per month and invalidated on every write.
type Server struct {
	http.Server

	svc       *services.FinanceService
	logger    *log.Logger
	limiter   *ratelimit.Limiter
	templates *template.Template
	now       func() time.Time

	overviewCache *cache.TTLCache[services.Overview]
	trendCache    *cache.TTLCache[[]core.TrendPoint]

	shutdownOnce sync.Once
}

// NewServer wires routes, middleware and caches into a ready-to-run
// server listening on the configured port.
func NewServer(cfg *config.Config, svc *services.FinanceService, logger *log.Logger) *Server {
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		svc:     svc,
		logger:  logger,
		now:     time.Now,
		limiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),

		overviewCache: cache.New[services.Overview](cfg.CacheMaxSize, cfg.CacheTTL),
		trendCache:    cache.New[[]core.TrendPoint](cfg.CacheMaxSize, cfg.CacheTTL),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("parse templates failed", log.FieldError, err)
	}
	s.templates = t

	mux := http.NewServeMux()
	s.routes(mux)

	headers := security.NewHeaders(security.DefaultHeadersConfig())
	traced := trace.NewMiddleware(logger, security.ExtractClientIP)
	handler := traced.Wrap(headers.Wrap(s.limiter.Wrap(security.ExtractClientIP, mux)))

	s.Server = http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("PUT /api/accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/cards", s.handleListCards)
	mux.HandleFunc("POST /api/cards", s.handleCreateCard)
	mux.HandleFunc("PUT /api/cards/{id}", s.handleUpdateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", s.handleDeleteCard)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleUpsertBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handleUpdateProfile)
	mux.HandleFunc("POST /api/onboarding", s.handleOnboarding)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports/trend", s.handleTrend)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssets(3600, static))
	} else {
		s.logger.Warn("mount embedded static assets failed", log.FieldError, err)
	}
	mux.HandleFunc("GET /{$}", s.handleIndex)
}

// RegisterCaches adds the server's report caches to a sweeper so
// expired entries are evicted even without traffic.
func (s *Server) RegisterCaches(sweeper *cache.Sweeper) {
	sweeper.Register(s.overviewCache)
	sweeper.Register(s.trendCache)
}

// invalidateDerived flushes every cached report. Called after each
// successful write; any month may be affected by an edit.
func (s *Server) invalidateDerived() {
	s.overviewCache.InvalidatePrefix(overviewKeyPrefix)
	s.trendCache.InvalidatePrefix(trendKeyPrefix)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports readiness after a cheap storage round trip.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.ListBudgets(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "readiness probe failed", log.FieldError, err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Month string
	}{
		Month: string(core.MonthKeyAt(s.now())),
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "render index failed", log.FieldError, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// Shutdown stops background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
