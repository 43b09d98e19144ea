package ports

import (
	"context"

	"okdelivery/internal/core/domain/model/assignment"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// package status history. Entries are never updated or deleted.
type LedgerRepository interface {
	// Append persists one immutable ledger entry.
	Append(ctx context.Context, entry *ledger.Entry) error
}

// AssignmentRepository defines the persistence contract for rider-assignment
// records. Records are append-mostly: created on every (re)assignment, with
// only the status changing afterwards.
type AssignmentRepository interface {
	// Add persists a new assignment record.
	Add(ctx context.Context, record *assignment.Assignment) error

	// Update persists a status change on an existing record.
	Update(ctx context.Context, record *assignment.Assignment) error

	// GetOpenByPackageID retrieves the package's records still in Assigned
	// status, oldest first.
	GetOpenByPackageID(ctx context.Context, packageID kernel.UUID) ([]*assignment.Assignment, error)
}
