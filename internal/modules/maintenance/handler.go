package maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentora/internal/domain"
	"rentora/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tickets", h.CreateTicket)
	rg.GET("/tickets", h.ListMyTickets)
	rg.GET("/tickets/:id", h.GetTicket)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/tickets/open", h.ListOpenTickets)
	rg.PATCH("/tickets/:id/status", h.UpdateTicketStatus)
	rg.POST("/tickets/:id/vendor", h.AssignVendor)
	rg.POST("/vendors", h.CreateVendor)
	rg.GET("/vendors", h.ListVendors)
}

func (h *Handler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.CreateTicket(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrNoActiveLease) {
			response.Error(c, http.StatusConflict, "NO_ACTIVE_LEASE", "No active lease to report against")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create ticket")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) GetTicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	t, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load ticket")
		return
	}

	// Tenants may only see their own tickets.
	if c.GetString("role") != string(domain.RoleAdmin) && t.TenantID != c.GetInt64("user_id") {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) ListMyTickets(c *gin.Context) {
	list, err := h.service.ListMyTickets(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tickets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tickets": list})
}

func (h *Handler) ListOpenTickets(c *gin.Context) {
	list, err := h.service.ListOpenTickets(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tickets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tickets": list})
}

func (h *Handler) UpdateTicketStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	var req UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateTicketStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Ticket cannot move to that status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update ticket")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) AssignVendor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ticket ID")
		return
	}

	var req AssignVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.AssignVendor(c.Request.Context(), id, req.VendorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket or vendor not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign vendor")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.CreateVendor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create vendor")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"vendor": v})
}

func (h *Handler) ListVendors(c *gin.Context) {
	list, err := h.service.ListVendors(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vendors")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vendors": list})
}
