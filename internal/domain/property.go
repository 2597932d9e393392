package domain

import "time"

type Property struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	City        string    `json:"city,omitempty"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:PropertyID"`
}

func (Property) TableName() string { return "properties" }

type RoomType string

const (
	RoomSingle    RoomType = "single"
	RoomDouble    RoomType = "double"
	RoomStudio    RoomType = "studio"
	RoomApartment RoomType = "apartment"
)

// Room is the unit of rentable space. IsOccupied must always agree with
// "an active lease references this room"; both are mutated in the same
// transaction by the leasing workflow.
type Room struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	PropertyID   int64     `json:"property_id" gorm:"not null;index" validate:"required"`
	Number       string    `json:"number" gorm:"not null" validate:"required"`
	RoomType     RoomType  `json:"room_type" validate:"required"`
	MonthlyPrice int64     `json:"monthly_price" validate:"required,gt=0"`
	IsOccupied   bool      `json:"is_occupied" gorm:"not null;default:false"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Photos       []string  `json:"photos,omitempty" gorm:"serializer:json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }
