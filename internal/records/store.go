package records

import (
	"context"
	"errors"
	"time"

	"github.com/admin-panel-kit/attachment-service/internal/models"
)

var ErrNotFound = errors.New("file record not found")

// ListFilters narrows the admin listing. Zero values mean "no filter".
// Removed rows are always excluded regardless of the status filter.
type ListFilters struct {
	Name      string
	Status    int
	DateStart time.Time
	DateEnd   time.Time
}

// Store persists file metadata.
type Store interface {
	Create(ctx context.Context, record *models.FileRecord) error
	GetByID(ctx context.Context, id string) (models.FileRecord, error)

	// FindByFingerprint returns the non-removed record matching the
	// (fingerprint, name) dedup key, if any.
	FindByFingerprint(ctx context.Context, fingerprint, name string) (models.FileRecord, bool, error)

	// UpdateStatus transitions all given ids in one batch and returns the
	// number of rows touched.
	UpdateStatus(ctx context.Context, ids []string, status int) (int64, error)

	// UpdateContent swaps name, fingerprint and reference together on an
	// existing record (the administrative replace path).
	UpdateContent(ctx context.Context, id, name, fingerprint, reference string) error

	List(ctx context.Context, filters ListFilters, current, pageSize int) ([]models.FileRecord, error)
	Count(ctx context.Context, filters ListFilters) (int64, error)
}
