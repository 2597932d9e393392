package domain

import "time"

// Lease binds one tenant to one room for a date range.
//
// At most one lease per room and at most one lease per tenant may be active
// at any time. Both are enforced at write time inside the issuance
// transaction; on postgres the partial unique indexes below back them up.
type Lease struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenant_id" gorm:"not null;index" validate:"required"`
	RoomID    int64     `json:"room_id" gorm:"not null;index" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant *User `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Room   *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (Lease) TableName() string { return "leases" }

// Postgres-only partial unique indexes, created alongside AutoMigrate.
const (
	IndexOneActiveLeasePerRoom   = "CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_lease_per_room ON leases (room_id) WHERE is_active"
	IndexOneActiveLeasePerTenant = "CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_lease_per_tenant ON leases (tenant_id) WHERE is_active"
)
