// Package commands contains the business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and a best-effort broadcast after commit.
package commands

import (
	"context"

	"okdelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// RiderRepoFactory provides access to the rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// LedgerRepoFactory provides access to the status ledger within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// MerchantRepoFactory provides access to the merchant lookup within a transaction.
	MerchantRepoFactory interface {
		MerchantRepository() ports.MerchantRepository
	}

	// PackageUoW manages transactions for package lifecycle operations.
	// A status transition writes the package row, closes open assignment
	// records when the rider is released, and appends the ledger entry as
	// one unit.
	PackageUoW interface {
		TxManager
		PackageRepoFactory
		AssignmentRepoFactory
		LedgerRepoFactory
	}

	// PackageUoWFactory creates new package unit of work instances.
	PackageUoWFactory interface {
		Create() PackageUoW
	}

	// RiderUoW manages transactions for rider-only operations.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates new rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// AssignUoW manages transactions spanning package, rider, assignment,
	// ledger, and merchant lookups. Used by the assignment workflows, where a
	// single package's state write, assignment record, and ledger entry must
	// commit together.
	AssignUoW interface {
		TxManager
		PackageRepoFactory
		RiderRepoFactory
		AssignmentRepoFactory
		LedgerRepoFactory
		MerchantRepoFactory
	}

	// AssignUoWFactory creates new assignment unit of work instances.
	AssignUoWFactory interface {
		Create() AssignUoW
	}
)
