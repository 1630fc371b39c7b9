package service

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"market_movers/internal/alerts"
	"market_movers/internal/grid"
	"market_movers/internal/metrics"
	feedsvc "market_movers/internal/modules/feed/service"
	layoutsvc "market_movers/internal/modules/layouts/service"
	regsvc "market_movers/internal/modules/registry/service"
	widgetsvc "market_movers/internal/modules/widgets/service"
	"market_movers/internal/news"
	"market_movers/pkg/tracing"
)

// Server is the dashboard's backend surface: REST over the core
// components plus a websocket quote stream.
type Server struct {
	log      *zap.Logger
	feed     *feedsvc.Feed
	store    *widgetsvc.Store
	layouts  *layoutsvc.Manager
	registry *regsvc.Registry
	grid     *grid.Integration
	news     *news.Provider
	sched    *alerts.Scheduler

	upgrader websocket.Upgrader
}

func NewServer(
	log *zap.Logger,
	feed *feedsvc.Feed,
	store *widgetsvc.Store,
	layouts *layoutsvc.Manager,
	registry *regsvc.Registry,
	gridIntegration *grid.Integration,
	newsProvider *news.Provider,
	sched *alerts.Scheduler,
) *Server {
	return &Server{
		log:      log,
		feed:     feed,
		store:    store,
		layouts:  layouts,
		registry: registry,
		grid:     gridIntegration,
		news:     newsProvider,
		sched:    sched,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// the dashboard is a local single-user tool
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/quotes", s.handleQuotes)
	mux.HandleFunc("GET /api/quotes/{symbol}", s.handleQuote)
	mux.HandleFunc("GET /api/movers/gainers", s.handleGainers)
	mux.HandleFunc("GET /api/movers/losers", s.handleLosers)
	mux.HandleFunc("GET /api/movers/volume", s.handleVolumeLeaders)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	mux.HandleFunc("GET /api/widgets", s.handleListWidgets)
	mux.HandleFunc("POST /api/widgets", s.handleAddWidget)
	mux.HandleFunc("PUT /api/widgets", s.handleLoadWidgets)
	mux.HandleFunc("DELETE /api/widgets", s.handleClearWidgets)
	mux.HandleFunc("PATCH /api/widgets/{id}", s.handleUpdateWidget)
	mux.HandleFunc("DELETE /api/widgets/{id}", s.handleRemoveWidget)

	mux.HandleFunc("GET /api/widget-types", s.handleWidgetTypes)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/grid", s.handleGridItems)
	mux.HandleFunc("POST /api/grid/{breakpoint}", s.handleGridChange)

	mux.HandleFunc("GET /api/layouts", s.handleListLayouts)
	mux.HandleFunc("POST /api/layouts", s.handleSaveLayout)
	mux.HandleFunc("POST /api/layouts/{name}/load", s.handleLoadLayout)
	mux.HandleFunc("DELETE /api/layouts/{name}", s.handleDeleteLayout)

	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("POST /api/templates", s.handleSaveTemplate)
	mux.HandleFunc("POST /api/templates/{id}/instantiate", s.handleInstantiateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", s.handleDeleteTemplate)

	mux.HandleFunc("GET /api/news", s.handleNews)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("DELETE /api/alerts", s.handleClearAlerts)

	mux.HandleFunc("GET /ws", s.handleWS)
	mux.Handle("GET /metrics", promhttp.Handler())

	return tracing.Middleware(s.withLatency(mux))
}

func (s *Server) withLatency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		metrics.RequestLatency.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
