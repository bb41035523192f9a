package repository

import (
	"context"

	"progression-engine/pkg/domain"
)

// ProgressRepository defines the interface for managing player progress
// records. The engine computes each update from a read of the full current
// record followed by a whole-record write; serialization at (player,
// definition) granularity is the engine's responsibility, not the store's.
type ProgressRepository interface {
	// GetProgress retrieves a single player's progress for a definition.
	// Returns nil if no progress record exists (lazy initialization).
	GetProgress(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error)

	// ListPlayerProgress retrieves all progress records for a player,
	// optionally filtered by definition kind (empty kind means all).
	// Returns an empty slice if the player has no records.
	ListPlayerProgress(ctx context.Context, playerID string, kind domain.DefinitionKind) ([]*domain.ProgressRecord, error)

	// ListDefinitionProgress retrieves all players' records for one
	// definition. Used by the lapsed-cycle sweep.
	ListDefinitionProgress(ctx context.Context, definitionID string) ([]*domain.ProgressRecord, error)

	// UpsertProgress creates or updates a single progress record.
	// Does NOT update if the stored status is 'claimed' (protection against
	// regressing a claimed record within the same cycle).
	UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error

	// ReplaceProgress unconditionally overwrites a record, including claimed
	// ones. Used only by the challenge cycle reset, which replaces a lapsed
	// cycle's record with a fresh one for the next window.
	ReplaceProgress(ctx context.Context, record *domain.ProgressRecord) error

	// MarkAsClaimed transitions a record from 'completed' to 'claimed' and
	// sets the claimed timestamp. Returns ErrProgressNotFound,
	// ErrAlreadyClaimed or ErrNotCompleted when the transition is invalid.
	MarkAsClaimed(ctx context.Context, playerID, definitionID string) error

	// BeginTx starts a transaction and returns a transactional repository.
	// Used by the claim flow to make check-issue-mark atomic.
	BeginTx(ctx context.Context) (TxRepository, error)
}

// TxRepository represents a transactional repository that supports
// commit/rollback. Row-level locking via GetProgressForUpdate prevents
// concurrent claims of the same record.
type TxRepository interface {
	ProgressRepository

	// GetProgressForUpdate retrieves a record while locking it against
	// concurrent claim attempts for the duration of the transaction.
	GetProgressForUpdate(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error)

	// Commit commits the transaction.
	Commit() error

	// Rollback rolls back the transaction.
	Rollback() error
}
