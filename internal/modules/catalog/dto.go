package catalog

import "rentora/internal/domain"

type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city"`
	Description string `json:"description"`
}

type CreateRoomRequest struct {
	PropertyID   int64           `json:"property_id" binding:"required" validate:"required"`
	Number       string          `json:"number" binding:"required" validate:"required"`
	RoomType     domain.RoomType `json:"room_type" binding:"required" validate:"required,oneof=single double studio apartment"`
	MonthlyPrice int64           `json:"monthly_price" binding:"required,gt=0" validate:"required,gt=0"`
	Description  string          `json:"description"`
	Photos       []string        `json:"photos"`
}
