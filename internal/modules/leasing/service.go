package leasing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

type Service struct {
	leases       LeaseRepository
	reservations ReservationRepository
	rooms        RoomGetter
	notifier     Notifier
}

func NewService(leases LeaseRepository, reservations ReservationRepository, rooms RoomGetter, notifier Notifier) *Service {
	return &Service{
		leases:       leases,
		reservations: reservations,
		rooms:        rooms,
		notifier:     notifier,
	}
}

// CreateReservation records a tenant's intent to occupy a room. Vacancy is
// only advisory here: the room can still be taken before an admin converts
// the reservation into a lease, and the issuance transaction is what decides.
func (s *Service) CreateReservation(ctx context.Context, userID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.IsOccupied {
		return nil, ErrRoomOccupied
	}

	res := &domain.Reservation{
		UserID: userID,
		RoomID: req.RoomID,
		Status: domain.ReservationPending,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) CancelReservation(ctx context.Context, userID, reservationID int64, isAdmin bool) error {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !isAdmin && res.UserID != userID {
		return ErrNotFound
	}

	err = s.reservations.Cancel(ctx, reservationID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReservationNotPending):
		return ErrReservationNotPending
	}
	return err
}

func (s *Service) ListMyReservations(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

func (s *Service) ListPendingReservations(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.ListPending(ctx)
}

// CreateLease issues a lease together with its first invoice and payment in
// one transaction. Nothing is visible unless everything committed: no lease
// without a paid first invoice, no claimed room without a lease.
func (s *Service) CreateLease(ctx context.Context, req CreateLeaseRequest) (*CreateLeaseResponse, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrInvalidDates
	}
	if req.FirstAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	if req.ReservationID != nil {
		res, err := s.reservations.GetByID(ctx, *req.ReservationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if res.UserID != req.TenantID || res.RoomID != req.RoomID {
			return nil, ErrReservationMismatch
		}
	}

	lease := &domain.Lease{
		TenantID:  req.TenantID,
		RoomID:    req.RoomID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	invoice := &domain.Invoice{
		Amount:  req.FirstAmount,
		DueDate: req.FirstDueDate,
	}
	payment := &domain.Payment{
		Amount:      req.FirstAmount,
		PaymentDate: time.Now(),
		Method:      req.PaymentMethod,
		Reference:   uuid.NewString(),
	}

	err := s.leases.Issue(ctx, repository.IssueLeaseParams{
		Lease:         lease,
		FirstInvoice:  invoice,
		FirstPayment:  payment,
		ReservationID: req.ReservationID,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrRoomOccupied):
		return nil, ErrRoomOccupied
	case errors.Is(err, repository.ErrTenantHasActiveLease):
		return nil, ErrTenantHasActiveLease
	case errors.Is(err, repository.ErrReservationNotPending):
		return nil, ErrReservationNotPending
	case err != nil:
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"lease_id":  lease.ID,
		"tenant_id": lease.TenantID,
		"room_id":   lease.RoomID,
	}).Info("lease issued")

	if s.notifier != nil {
		s.notifier.NotifyLeaseCreated(ctx, lease.TenantID, lease.ID, lease.RoomID)
	}

	return &CreateLeaseResponse{Lease: lease, Invoice: invoice, Payment: payment}, nil
}

// EndLease deactivates a lease and reopens its room. Invoices keep their
// status; an unpaid invoice on an ended lease stays collectible.
func (s *Service) EndLease(ctx context.Context, leaseID int64) (*domain.Lease, error) {
	lease, err := s.leases.End(ctx, leaseID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrLeaseNotActive):
		return nil, ErrLeaseNotActive
	case err != nil:
		return nil, err
	}

	logrus.WithField("lease_id", lease.ID).Info("lease ended")

	if s.notifier != nil {
		s.notifier.NotifyLeaseEnded(ctx, lease.TenantID, lease.ID)
	}
	return lease, nil
}

func (s *Service) GetLease(ctx context.Context, id int64) (*domain.Lease, error) {
	lease, err := s.leases.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return lease, err
}

func (s *Service) GetMyLease(ctx context.Context, tenantID int64) (*domain.Lease, error) {
	return s.leases.GetActiveByTenant(ctx, tenantID)
}

func (s *Service) ListLeases(ctx context.Context, limit, offset int) ([]domain.Lease, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.leases.List(ctx, limit, offset)
}
