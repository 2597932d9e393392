package maintenance

import (
	"context"
	"errors"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

// transitions is the ticket state machine. Resolved and closed are terminal.
var transitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketOpen:       {domain.TicketInProgress, domain.TicketClosed},
	domain.TicketInProgress: {domain.TicketResolved, domain.TicketClosed},
}

func canTransition(from, to domain.TicketStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type LeaseGetter interface {
	GetActiveByTenant(ctx context.Context, tenantID int64) (*domain.Lease, error)
}

type Notifier interface {
	NotifyTicketUpdated(ctx context.Context, tenantID, ticketID int64, status domain.TicketStatus)
}

type Service struct {
	repo     *repository.MaintenanceRepository
	leases   LeaseGetter
	notifier Notifier
}

func NewService(repo *repository.MaintenanceRepository, leases LeaseGetter, notifier Notifier) *Service {
	return &Service{repo: repo, leases: leases, notifier: notifier}
}

// CreateTicket files a ticket against the room of the tenant's active lease.
// Tenants without an active lease have no room to report on.
func (s *Service) CreateTicket(ctx context.Context, tenantID int64, req CreateTicketRequest) (*domain.MaintenanceTicket, error) {
	lease, err := s.leases.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, ErrNoActiveLease
	}

	t := &domain.MaintenanceTicket{
		RoomID:      lease.RoomID,
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TicketOpen,
	}
	if err := s.repo.CreateTicket(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTicket(ctx context.Context, id int64) (*domain.MaintenanceTicket, error) {
	t, err := s.repo.GetTicketByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *Service) ListMyTickets(ctx context.Context, tenantID int64) ([]domain.MaintenanceTicket, error) {
	return s.repo.ListTicketsByTenant(ctx, tenantID)
}

func (s *Service) ListOpenTickets(ctx context.Context) ([]domain.MaintenanceTicket, error) {
	return s.repo.ListOpenTickets(ctx)
}

func (s *Service) UpdateTicketStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.MaintenanceTicket, error) {
	t, err := s.repo.GetTicketByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canTransition(t.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateTicketStatus(ctx, id, status); err != nil {
		return nil, err
	}
	t.Status = status

	if s.notifier != nil {
		s.notifier.NotifyTicketUpdated(ctx, t.TenantID, t.ID, status)
	}
	return t, nil
}

func (s *Service) AssignVendor(ctx context.Context, ticketID, vendorID int64) (*domain.MaintenanceTicket, error) {
	t, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.repo.GetVendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.AssignVendor(ctx, ticketID, vendorID); err != nil {
		return nil, err
	}
	t.VendorID = &vendorID

	// Assignment implies work has started.
	if t.Status == domain.TicketOpen {
		if err := s.repo.UpdateTicketStatus(ctx, ticketID, domain.TicketInProgress); err != nil {
			return nil, err
		}
		t.Status = domain.TicketInProgress
		if s.notifier != nil {
			s.notifier.NotifyTicketUpdated(ctx, t.TenantID, t.ID, t.Status)
		}
	}
	return t, nil
}

func (s *Service) CreateVendor(ctx context.Context, req CreateVendorRequest) (*domain.Vendor, error) {
	v := &domain.Vendor{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Specialty: req.Specialty,
	}
	if err := s.repo.CreateVendor(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.repo.ListVendors(ctx)
}
