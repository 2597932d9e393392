package maintenance

import "rentora/internal/domain"

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status" binding:"required"`
}

type AssignVendorRequest struct {
	VendorID int64 `json:"vendor_id" binding:"required"`
}

type CreateVendorRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
	Specialty string `json:"specialty"`
}
