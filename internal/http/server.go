// Package http serves the local JSON API consumed by the rendering
// collaborator. All state access goes through the ledger.
package http

import (
	"net/http"
	"time"

	"campuscoins/internal/cache"
	"campuscoins/internal/ledger"
	"campuscoins/internal/log"
	"campuscoins/internal/middleware/trace"
)

type Server struct {
	http.Server
	ledger *ledger.Ledger
	logger *log.Logger

	// Dashboard responses are memoized per (month, log generation), so
	// a mutation naturally invalidates every cached month.
	dashCache *cache.LRUCache[dashboardResponse]
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, ldg *ledger.Ledger, logger *log.Logger, cacheSize int, cacheTTL time.Duration) *Server {
	s := &Server{
		ledger:    ldg,
		logger:    logger.WithComponent(log.ComponentHTTP),
		dashCache: cache.NewLRUCache[dashboardResponse](cacheSize, cacheTTL),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions", s.handleClearTransactions)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PATCH /api/settings", s.handlePatchSettings)
	mux.HandleFunc("POST /api/settings/categories", s.handleAddCategory)
	mux.HandleFunc("DELETE /api/settings/categories", s.handleRemoveCategory)

	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      trace.Middleware(log.Middleware(s.logger)(withSecurityHeaders(mux))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// RegisterCaches attaches the server's caches to the cleanup manager.
func (s *Server) RegisterCaches(m *cache.Manager) {
	m.Register(s.dashCache)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
