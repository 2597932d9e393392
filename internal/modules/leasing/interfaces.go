package leasing

import (
	"context"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

type LeaseRepository interface {
	Issue(ctx context.Context, p repository.IssueLeaseParams) error
	End(ctx context.Context, leaseID int64) (*domain.Lease, error)
	GetByID(ctx context.Context, id int64) (*domain.Lease, error)
	GetActiveByTenant(ctx context.Context, tenantID int64) (*domain.Lease, error)
	List(ctx context.Context, limit, offset int) ([]domain.Lease, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	ListPending(ctx context.Context) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id int64) error
}

type RoomGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type Notifier interface {
	NotifyLeaseCreated(ctx context.Context, tenantID, leaseID, roomID int64)
	NotifyLeaseEnded(ctx context.Context, tenantID, leaseID int64)
}
