package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"CasaMoreno/internal/loader"
	"CasaMoreno/internal/middleware"
	"CasaMoreno/internal/model"
	"CasaMoreno/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageLoader — источник props страниц (реализуется loader.Loader)
type PageLoader interface {
	Home(ctx context.Context) loader.Result[model.HomeProps]
	Offers(ctx context.Context) loader.Result[model.ListingProps]
	Category(ctx context.Context, category string) loader.Result[model.ListingProps]
}

var _ PageLoader = (*loader.Loader)(nil)

// PageHandler рендерит страницы витрины.
// Сбой бэкенда не ломает страницу: загрузчик отдаёт пустые props, ответ 200.
type PageHandler struct {
	Pages    PageLoader
	Renderer *view.Renderer
	Logger   *zap.SugaredLogger
}

// NewPageHandler создаёт хендлер страниц
func NewPageHandler(pages PageLoader, renderer *view.Renderer, logger *zap.SugaredLogger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PageHandler{Pages: pages, Renderer: renderer, Logger: logger}
}

// Home — главная страница: категории и акционные товары
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	res := h.Pages.Home(r.Context())
	h.html(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Home(w, res.Props)
	})
}

// Offers — все акционные товары
func (h *PageHandler) Offers(w http.ResponseWriter, r *http.Request) {
	res := h.Pages.Offers(r.Context())
	h.html(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Listing(w, "Ofertas", res.Props)
	})
}

// Category — товары категории
func (h *PageHandler) Category(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if unescaped, err := url.PathUnescape(category); err == nil {
		category = unescaped
	}
	category = strings.TrimSpace(category)
	if category == "" {
		h.NotFound(w, r)
		return
	}

	res := h.Pages.Category(r.Context(), category)
	h.html(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Listing(w, category, res.Props)
	})
}

// Stylesheet отдаёт CSS темы
func (h *PageHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := h.Renderer.Stylesheet(w); err != nil {
		h.Logger.Errorw("Failed to render stylesheet", "request_id", middleware.GetRequestID(r.Context()), "error", err)
		w.Header().Del("Cache-Control")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// NotFound — страница 404
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound)
}

func (h *PageHandler) html(w http.ResponseWriter, r *http.Request, render func(w http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w); err != nil {
		h.Logger.Errorw("Failed to render page",
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		h.renderError(w, r, http.StatusInternalServerError)
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.Renderer.Error(w, status); err != nil {
		h.Logger.Errorw("Failed to render error page", "status", status, "path", r.URL.Path, "error", err)
		_, _ = w.Write([]byte(http.StatusText(status)))
	}
}
