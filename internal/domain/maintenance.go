package domain

import "time"

type Vendor struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Vendor) TableName() string { return "vendors" }

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

type MaintenanceTicket struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	RoomID      int64        `json:"room_id" gorm:"not null;index" validate:"required"`
	TenantID    int64        `json:"tenant_id" gorm:"not null;index" validate:"required"`
	VendorID    *int64       `json:"vendor_id,omitempty"`
	Title       string       `json:"title" gorm:"not null" validate:"required"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Status      TicketStatus `json:"status" gorm:"not null;default:'open'"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (MaintenanceTicket) TableName() string { return "maintenance_tickets" }
