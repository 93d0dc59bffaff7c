package handlers

import (
	"net/http"

	"CasaMoreno/internal/metrics"
	"CasaMoreno/internal/middleware"
	"CasaMoreno/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров витрины
func NewHandler(
	pages PageLoader,
	renderer *view.Renderer,
	m *metrics.Manager,
	logger *zap.SugaredLogger,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics(m))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithStorage)

	pageHandler := NewPageHandler(pages, renderer, logger)

	// Pages
	r.Get("/", pageHandler.Home)
	r.Get("/offers", pageHandler.Offers)
	r.Get("/products/{category}", pageHandler.Category)

	// Assets
	r.Get("/assets/theme.css", pageHandler.Stylesheet)

	// Service
	r.Get("/healthz", Health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.NotFound(pageHandler.NotFound)

	return &Handler{Router: r}
}

// Health отвечает, что процесс жив; бэкенд не опрашивается
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
