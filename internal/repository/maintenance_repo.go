package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rentora/internal/domain"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) CreateTicket(ctx context.Context, t *domain.MaintenanceTicket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *MaintenanceRepository) GetTicketByID(ctx context.Context, id int64) (*domain.MaintenanceTicket, error) {
	var t domain.MaintenanceTicket
	err := r.db.WithContext(ctx).Preload("Room").Preload("Vendor").First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MaintenanceRepository) ListTicketsByTenant(ctx context.Context, tenantID int64) ([]domain.MaintenanceTicket, error) {
	var out []domain.MaintenanceTicket
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *MaintenanceRepository) ListOpenTickets(ctx context.Context) ([]domain.MaintenanceTicket, error) {
	var out []domain.MaintenanceTicket
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("status IN ?", []domain.TicketStatus{domain.TicketOpen, domain.TicketInProgress}).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *MaintenanceRepository) UpdateTicketStatus(ctx context.Context, id int64, status domain.TicketStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.MaintenanceTicket{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *MaintenanceRepository) AssignVendor(ctx context.Context, ticketID, vendorID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.MaintenanceTicket{}).
		Where("id = ?", ticketID).
		Update("vendor_id", vendorID).Error
}

func (r *MaintenanceRepository) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *MaintenanceRepository) GetVendorByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MaintenanceRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	var out []domain.Vendor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}
