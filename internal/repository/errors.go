package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	sqlite "modernc.org/sqlite"
)

// Sentinel errors surfaced by transactional workflows. Services translate
// them into their own error vocabulary.
var (
	ErrNotFound              = errors.New("record not found")
	ErrRoomOccupied          = errors.New("room already has an active lease")
	ErrTenantHasActiveLease  = errors.New("tenant already has an active lease")
	ErrLeaseNotActive        = errors.New("lease is not active")
	ErrReservationNotPending = errors.New("reservation is not pending")
	ErrInvoiceAlreadyPaid    = errors.New("invoice is already paid")
)

// SQLite extended result codes for unique/primary-key violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// isDuplicateKey reports whether err is a unique-constraint violation on any
// of the supported drivers. gorm's TranslateError covers postgres; the raw
// driver errors are checked too because the modernc sqlite driver is not
// translated.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqliteConstraintPrimaryKey || code == sqliteConstraintUnique
	}
	return false
}
