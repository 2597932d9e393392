package billing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentora/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes the tenant-facing billing endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices/me", h.ListMyInvoices)
	rg.GET("/invoices/:id", h.GetInvoice)
}

// RegisterAdminRoutes exposes invoice issuance and payment recording.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoices", h.GenerateInvoice)
	rg.GET("/leases/:id/invoices", h.ListByLease)
	rg.POST("/payments", h.RecordPayment)
	rg.POST("/invoices/sweep", h.SweepOverdue)
}

func (h *Handler) GenerateInvoice(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.GenerateInvoice(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be positive")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lease not found")
		case errors.Is(err, ErrLeaseNotActive):
			response.Error(c, http.StatusConflict, "LEASE_NOT_ACTIVE", "Lease is not active")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate invoice")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"invoice": inv})
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	payment, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be positive")
		case errors.Is(err, ErrInvalidPaymentMethod):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment method")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found")
		case errors.Is(err, ErrInvoiceAlreadyPaid):
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "Invoice is already paid")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record payment")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load invoice")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) ListByLease(c *gin.Context) {
	leaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lease ID")
		return
	}

	list, err := h.service.ListByLease(c.Request.Context(), leaseID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoices": list})
}

func (h *Handler) ListMyInvoices(c *gin.Context) {
	list, err := h.service.ListMyInvoices(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoices": list})
}

func (h *Handler) SweepOverdue(c *gin.Context) {
	n, err := h.service.SweepOverdue(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Sweep failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked_overdue": n})
}
