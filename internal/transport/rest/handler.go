// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/service"
	"github.com/abgdnv/webshop/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// NewHandler creates a new Handler serving the provided service.
// Metrics are exposed from gatherer; a nil gatherer falls back to the default registry.
func NewHandler(service service.ProductService, gatherer prometheus.Gatherer, logger *slog.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
		gatherer: gatherer,
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{articleNumber}", func(r chi.Router) {
			r.Get("/", h.FindByArticleNumber)
			r.Get("/exists", h.ExistsByArticleNumber)
		})
	})
	r.Get("/api/v1/stats", h.Stats)

	r.Get("/healthz", h.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}

// FindAll returns every product with a recognized type.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto service.ProductDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "product", dto)
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return
		}
		h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		if errors.Is(err, perrors.ErrUnknownProductType) {
			h.logger.WarnContext(r.Context(), "Unknown product type", "type", dto.Type)
			web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Unknown product type %q", dto.Type))
			return
		}
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "articleNumber", created.ArticleNumber, "title", created.Title)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// FindByArticleNumber returns the first product stored under the article number.
func (h *Handler) FindByArticleNumber(w http.ResponseWriter, r *http.Request) {
	articleNumber := chi.URLParam(r, "articleNumber")
	h.logger.DebugContext(r.Context(), "Received request to find product", "articleNumber", articleNumber)

	found, err := h.service.FindByArticleNumber(r.Context(), articleNumber)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			h.logger.WarnContext(r.Context(), "Product not found", "articleNumber", articleNumber, "error", err)
			web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with article number %s not found", articleNumber))
			return
		}
		h.logger.ErrorContext(r.Context(), "Error retrieving product", "articleNumber", articleNumber, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with article number %s", articleNumber))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// ExistsByArticleNumber answers {"exists": bool}.
func (h *Handler) ExistsByArticleNumber(w http.ResponseWriter, r *http.Request) {
	articleNumber := chi.URLParam(r, "articleNumber")
	exists, err := h.service.ExistsByArticleNumber(r.Context(), articleNumber)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error checking product", "articleNumber", articleNumber, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to check product with article number %s", articleNumber))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]bool{"exists": exists})
}

// Stats reports the number of stored product documents.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error counting products", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to count products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]int64{"products": count})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
