package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"rentora/internal/domain"
)

type LeaseRepository struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// IssueLeaseParams carries everything the issuance transaction writes.
type IssueLeaseParams struct {
	Lease         *domain.Lease
	FirstInvoice  *domain.Invoice
	FirstPayment  *domain.Payment
	ReservationID *int64
}

// Issue performs the lease-issuance workflow atomically: claim the room,
// create the lease, create the first invoice, settle it with the first
// payment and, when given, confirm the originating reservation. Any failure
// rolls back every write.
//
// The conditional room update is the serialization point: of two concurrent
// issuances for the same room exactly one flips is_occupied and the other
// gets ErrRoomOccupied. On postgres the partial unique indexes on leases
// back this up; a duplicate-key error is translated accordingly.
func (r *LeaseRepository) Issue(ctx context.Context, p IssueLeaseParams) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&domain.Room{}).
			Where("id = ? AND is_occupied = ?", p.Lease.RoomID, false).
			Update("is_occupied", true)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Room{}).Where("id = ?", p.Lease.RoomID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrRoomOccupied
		}

		var active int64
		if err := tx.Model(&domain.Lease{}).
			Where("tenant_id = ? AND is_active = ?", p.Lease.TenantID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrTenantHasActiveLease
		}

		p.Lease.IsActive = true
		if err := tx.Create(p.Lease).Error; err != nil {
			return translateLeaseConflict(err)
		}

		p.FirstInvoice.LeaseID = p.Lease.ID
		p.FirstInvoice.Status = domain.InvoiceDue
		if err := tx.Create(p.FirstInvoice).Error; err != nil {
			return err
		}

		p.FirstPayment.InvoiceID = p.FirstInvoice.ID
		if err := tx.Create(p.FirstPayment).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Invoice{}).
			Where("id = ?", p.FirstInvoice.ID).
			Updates(map[string]any{
				"status":     domain.InvoicePaid,
				"payment_id": p.FirstPayment.ID,
			}).Error; err != nil {
			return err
		}
		p.FirstInvoice.Status = domain.InvoicePaid
		p.FirstInvoice.PaymentID = &p.FirstPayment.ID

		if p.ReservationID != nil {
			var res domain.Reservation
			if err := tx.First(&res, *p.ReservationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if res.Status != domain.ReservationPending {
				return ErrReservationNotPending
			}
			if err := tx.Model(&res).Update("status", domain.ReservationConfirmed).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// End deactivates a lease and reopens its room in one transaction.
func (r *LeaseRepository) End(ctx context.Context, leaseID int64) (*domain.Lease, error) {
	var lease domain.Lease
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lease, leaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !lease.IsActive {
			return ErrLeaseNotActive
		}

		if err := tx.Model(&lease).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Room{}).
			Where("id = ?", lease.RoomID).
			Update("is_occupied", false).Error
	})
	if err != nil {
		return nil, err
	}
	lease.IsActive = false
	return &lease, nil
}

func (r *LeaseRepository) GetByID(ctx context.Context, id int64) (*domain.Lease, error) {
	var lease domain.Lease
	err := r.db.WithContext(ctx).Preload("Room").First(&lease, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *LeaseRepository) GetActiveByTenant(ctx context.Context, tenantID int64) (*domain.Lease, error) {
	var lease domain.Lease
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *LeaseRepository) CountActiveByRoom(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Lease{}).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Count(&count).Error
	return count, err
}

func (r *LeaseRepository) List(ctx context.Context, limit, offset int) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.db.WithContext(ctx).
		Preload("Room").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&leases).Error
	return leases, err
}

func translateLeaseConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "idx_one_active_lease_per_room":
			return ErrRoomOccupied
		case "idx_one_active_lease_per_tenant":
			return ErrTenantHasActiveLease
		}
	}
	if isDuplicateKey(err) {
		return ErrRoomOccupied
	}
	return err
}
