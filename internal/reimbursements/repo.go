package reimbursements

import (
	"context"
	"time"
)

// Repo defines persistence operations for reimbursement records.
type Repo interface {
	// Create stores a full record, reference columns included.
	Create(ctx context.Context, rec Record) error
	// Update writes the present patch columns and updatedAt in one store
	// operation and returns the stored record.
	Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	// List returns records oldest first.
	List(ctx context.Context, limit, offset int) ([]Record, error)
	// DeleteAll removes every record. Used by seeding only.
	DeleteAll(ctx context.Context) (int64, error)
}
