package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentora/internal/database"
	"rentora/internal/domain"
)

// newTestDB opens an in-memory SQLite database. The pool is capped at one
// connection because each in-memory connection is its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RoleTenant,
		Name:         "Test Tenant",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRoom(t *testing.T, db *gorm.DB) *domain.Room {
	t.Helper()
	p := &domain.Property{Name: "Test House", Address: "1 Test Lane"}
	require.NoError(t, db.Create(p).Error)

	r := &domain.Room{
		PropertyID:   p.ID,
		Number:       "101",
		RoomType:     domain.RoomSingle,
		MonthlyPrice: 50000,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func issueLease(t *testing.T, db *gorm.DB, tenantID, roomID int64) (*domain.Lease, *domain.Invoice) {
	t.Helper()

	lease := &domain.Lease{
		TenantID:  tenantID,
		RoomID:    roomID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(1, 0, 0),
	}
	invoice := &domain.Invoice{Amount: 50000, DueDate: time.Now().AddDate(0, 1, 0)}
	payment := &domain.Payment{Amount: 50000, Method: domain.MethodCash, Reference: fmt.Sprintf("ref-%d-%d", tenantID, roomID)}

	err := NewLeaseRepository(db).Issue(context.Background(), IssueLeaseParams{
		Lease:        lease,
		FirstInvoice: invoice,
		FirstPayment: payment,
	})
	require.NoError(t, err)
	return lease, invoice
}
