package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/usecase"
)

const (
	serviceName    = "pantry-standardizer"
	serviceVersion = "1.0.0"

	healthCheckTimeout = 5 * time.Second
)

// Standardizer is the usecase surface the handlers depend on.
type Standardizer interface {
	Standardize(ctx context.Context, items []domain.ExtractedItem, opts ...usecase.StandardizeOption) ([]domain.ExtractedItem, error)
	StandardizeWithReport(ctx context.Context, items []domain.ExtractedItem, opts ...usecase.StandardizeOption) ([]domain.ExtractedItem, []domain.ItemOutcome, error)
	CatalogNames(ctx context.Context) ([]string, error)
	Threshold() int
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service Standardizer
	logger  *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(service Standardizer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// StandardizeRequest is the body of POST /api/v1/receipts/standardize
type StandardizeRequest struct {
	Items     []domain.ExtractedItem `json:"items" binding:"required,max=1000"`
	Threshold *int                   `json:"threshold,omitempty" binding:"omitempty,min=0,max=100"`
	Report    bool                   `json:"report,omitempty"`
}

// StandardizeResponse is returned by StandardizeReceipt
type StandardizeResponse struct {
	Items     []domain.ExtractedItem `json:"items"`
	Threshold int                    `json:"threshold"`
	Report    []domain.ItemOutcome   `json:"report,omitempty"`
}

// CatalogResponse is returned by ListCatalog
type CatalogResponse struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthCheck reports whether the ingredient catalog can be served.
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	catalog := gin.H{"status": "loaded"}

	names, err := h.service.CatalogNames(ctx)
	if err != nil {
		status = "degraded"
		catalog = gin.H{"status": "unavailable", "error": err.Error()}
		h.logger.Warn("health check: catalog unavailable", "error", err)
	} else {
		catalog["entries"] = len(names)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"service":   serviceName,
		"version":   serviceVersion,
		"catalog":   catalog,
		"timestamp": time.Now().UTC(),
	})
}

// StandardizeReceipt rewrites receipt item names to canonical ingredient names.
func (h *Handler) StandardizeReceipt(c *gin.Context) {
	var req StandardizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   domain.ErrInvalidRequest.Error(),
			Details: err.Error(),
		})
		return
	}

	threshold := h.service.Threshold()
	var opts []usecase.StandardizeOption
	if req.Threshold != nil {
		threshold = *req.Threshold
		opts = append(opts, usecase.WithThreshold(threshold))
	}

	var (
		items  []domain.ExtractedItem
		report []domain.ItemOutcome
		err    error
	)
	if req.Report {
		items, report, err = h.service.StandardizeWithReport(c.Request.Context(), req.Items, opts...)
	} else {
		items, err = h.service.Standardize(c.Request.Context(), req.Items, opts...)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardizeResponse{
		Items:     items,
		Threshold: threshold,
		Report:    report,
	})
}

// ListCatalog returns the loaded canonical names in match order.
func (h *Handler) ListCatalog(c *gin.Context) {
	names, err := h.service.CatalogNames(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{
		Names: names,
		Count: len(names),
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		h.logger.Error("catalog unavailable", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: domain.ErrCatalogUnavailable.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "request cancelled"})
	default:
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
