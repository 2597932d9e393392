package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a tenant's intent to occupy a vacant room. It is consumed
// (status -> confirmed) exactly when the corresponding lease is created.
type Reservation struct {
	ID        int64             `json:"id" gorm:"primaryKey"`
	UserID    int64             `json:"user_id" gorm:"not null;index" validate:"required"`
	RoomID    int64             `json:"room_id" gorm:"not null;index" validate:"required"`
	Status    ReservationStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Reservation) TableName() string { return "reservations" }
