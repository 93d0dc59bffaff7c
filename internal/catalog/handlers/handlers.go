package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"CasaMoreno/internal/catalog/auth"
	"CasaMoreno/internal/catalog/repo"
	"CasaMoreno/internal/catalog/service"
	"CasaMoreno/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров dev-каталога
func NewHandler(svc *service.CatalogService, logger *zap.SugaredLogger, authSecret string) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)
	r.Use(auth.WithBearer(authSecret))

	productHandler := NewProductHandler(svc, logger)

	// Product routes
	r.Get("/products/categories", productHandler.Categories)
	r.Get("/products/promotional", productHandler.Promotional)
	r.Get("/products/category/{category}", productHandler.ByCategory)

	// Auth routes
	r.Post("/auth/token", productHandler.IssueToken)

	return &Handler{Router: r}
}

// ProductHandler отдаёт каталог в JSON.
type ProductHandler struct {
	Service *service.CatalogService
	Logger  *zap.SugaredLogger
}

func NewProductHandler(svc *service.CatalogService, logger *zap.SugaredLogger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ProductHandler{Service: svc, Logger: logger}
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Service.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *ProductHandler) Promotional(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.Promotional(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if unescaped, err := url.PathUnescape(category); err == nil {
		category = unescaped
	}
	if strings.TrimSpace(category) == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	products, err := h.Service.ByCategory(r.Context(), category)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type tokenRequest struct {
	Customer string `json:"customer"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken выдаёт dev-токен — замена внешнему потоку авторизации
func (h *ProductHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Customer) == "" {
		http.Error(w, "customer is required", http.StatusBadRequest)
		return
	}

	token, err := h.Service.IssueToken(r.Context(), req.Customer)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Infow("Token issued", "customer", req.Customer)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *ProductHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Errorw("Catalog request failed",
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err,
	)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
