// Package shadow manages the local shadow copy of the authority's
// membership set: the persisted rows, the read-path reconciliation against
// the remote record, and the bulk convergence job.
package shadow

import (
	"context"
	"errors"

	"github.com/mvoronin/authgate/internal/models"
)

// ErrNotFound is returned when no shadow row matches the criteria.
var ErrNotFound = errors.New("shadow user not found")

// Criteria is the enumerated query surface of the shadow store. The first
// group of fields maps onto local columns; the second group exists only at
// the authority, and any query using it is resolved remotely first.
type Criteria struct {
	ID         uint32
	NationalID string
	Username   string
	Email      string
	Phone      string

	// remote-only fields
	Role       string
	Department string
	Service    string
}

// RemoteOnly reports whether the criteria reference fields the local
// schema cannot answer.
func (c Criteria) RemoteOnly() bool {
	return c.Role != "" || c.Department != "" || c.Service != ""
}

// Repository is the persistence surface for shadow rows. Implementations
// must return ErrNotFound from Find when nothing matches.
type Repository interface {
	Find(ctx context.Context, c Criteria) (*models.ShadowUser, error)
	FindAll(ctx context.Context, c Criteria) ([]*models.ShadowUser, error)
	FindAllByIDs(ctx context.Context, ids []uint32) ([]*models.ShadowUser, error)
	IDs(ctx context.Context) ([]uint32, error)

	// CreateMinimal inserts a row holding only the id; remote detail is
	// filled in lazily on the next read. Inserting an existing id is a
	// no-op, which keeps the sync job re-runnable.
	CreateMinimal(ctx context.Context, id uint32) error
	DeleteByIDs(ctx context.Context, ids []uint32) (int64, error)

	// UpdateColumns persists the given columns of one row in a single
	// write. Keys must belong to the writable column set.
	UpdateColumns(ctx context.Context, id uint32, cols map[string]any) error

	TableExists(ctx context.Context) (bool, error)
}
