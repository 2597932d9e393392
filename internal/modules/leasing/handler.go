package leasing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentora/internal/domain"
	"rentora/internal/pkg/response"
	"rentora/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes the tenant-facing endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations", h.ListMyReservations)
	rg.DELETE("/reservations/:id", h.CancelReservation)
	rg.GET("/leases/me", h.GetMyLease)
}

// RegisterAdminRoutes exposes lease management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations/pending", h.ListPendingReservations)
	rg.POST("/leases", h.CreateLease)
	rg.GET("/leases", h.ListLeases)
	rg.GET("/leases/:id", h.GetLease)
	rg.POST("/leases/:id/end", h.EndLease)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, ErrRoomOccupied):
			response.Error(c, http.StatusConflict, "ROOM_OCCUPIED", "Room is already occupied")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) ListMyReservations(c *gin.Context) {
	list, err := h.service.ListMyReservations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	isAdmin := c.GetString("role") == string(domain.RoleAdmin)
	err = h.service.CancelReservation(c.Request.Context(), c.GetInt64("user_id"), id, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case errors.Is(err, ErrReservationNotPending):
			response.Error(c, http.StatusConflict, "NOT_PENDING", "Reservation is no longer pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel reservation")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) ListPendingReservations(c *gin.Context) {
	list, err := h.service.ListPendingReservations(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) CreateLease(c *gin.Context) {
	var req CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	res, err := h.service.CreateLease(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDates):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Start date must be before end date")
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "First payment amount must be positive")
		case errors.Is(err, ErrInvalidPaymentMethod):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment method")
		case errors.Is(err, ErrReservationMismatch):
			response.Error(c, http.StatusBadRequest, "RESERVATION_MISMATCH", "Reservation does not match tenant and room")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room or reservation not found")
		case errors.Is(err, ErrRoomOccupied):
			response.Error(c, http.StatusConflict, "ROOM_OCCUPIED", "Room is already occupied")
		case errors.Is(err, ErrTenantHasActiveLease):
			response.Error(c, http.StatusConflict, "TENANT_HAS_LEASE", "Tenant already has an active lease")
		case errors.Is(err, ErrReservationNotPending):
			response.Error(c, http.StatusConflict, "NOT_PENDING", "Reservation is no longer pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create lease")
		}
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) EndLease(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lease ID")
		return
	}

	lease, err := h.service.EndLease(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lease not found")
		case errors.Is(err, ErrLeaseNotActive):
			response.Error(c, http.StatusConflict, "LEASE_NOT_ACTIVE", "Lease is not active")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to end lease")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lease": lease})
}

func (h *Handler) GetLease(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lease ID")
		return
	}

	lease, err := h.service.GetLease(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lease not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lease")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lease": lease})
}

func (h *Handler) GetMyLease(c *gin.Context) {
	lease, err := h.service.GetMyLease(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lease")
		return
	}
	if lease == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No active lease")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lease": lease})
}

func (h *Handler) ListLeases(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leases, err := h.service.ListLeases(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list leases")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leases": leases})
}
