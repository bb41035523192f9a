package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"progression-engine/pkg/domain"
	"progression-engine/pkg/errors"
)

// MemoryProgressRepository is an in-memory ProgressRepository for local
// development and tests. Transactions snapshot the whole map at begin and
// restore it on rollback; begin serializes against other transactions, which
// is adequate at this store's scale.
type MemoryProgressRepository struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	records map[string]*domain.ProgressRecord
	now     func() time.Time
}

// NewMemoryProgressRepository creates an empty in-memory repository.
func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{
		records: make(map[string]*domain.ProgressRecord),
		now:     time.Now,
	}
}

func progressKey(playerID, definitionID string) string {
	return playerID + "|" + definitionID
}

// cloneRecord deep-copies a record so callers can mutate their copy without
// touching the stored one.
func cloneRecord(record *domain.ProgressRecord) *domain.ProgressRecord {
	clone := *record
	if record.Steps != nil {
		clone.Steps = make(map[string]*domain.StepProgress, len(record.Steps))
		for id, step := range record.Steps {
			s := *step
			clone.Steps[id] = &s
		}
	}
	return &clone
}

// GetProgress retrieves a single player's progress for a definition.
func (r *MemoryProgressRepository) GetProgress(_ context.Context, playerID, definitionID string) (*domain.ProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[progressKey(playerID, definitionID)]
	if !ok {
		return nil, nil
	}
	return cloneRecord(record), nil
}

// ListPlayerProgress retrieves all progress records for a player, optionally
// filtered by definition kind.
func (r *MemoryProgressRepository) ListPlayerProgress(_ context.Context, playerID string, kind domain.DefinitionKind) ([]*domain.ProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*domain.ProgressRecord, 0)
	for _, record := range r.records {
		if record.PlayerID != playerID {
			continue
		}
		if kind != "" && record.Kind != kind {
			continue
		}
		records = append(records, cloneRecord(record))
	}
	sortByCreatedAt(records)
	return records, nil
}

// ListDefinitionProgress retrieves all players' records for one definition.
func (r *MemoryProgressRepository) ListDefinitionProgress(_ context.Context, definitionID string) ([]*domain.ProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*domain.ProgressRecord, 0)
	for _, record := range r.records {
		if record.DefinitionID == definitionID {
			records = append(records, cloneRecord(record))
		}
	}
	sortByCreatedAt(records)
	return records, nil
}

func sortByCreatedAt(records []*domain.ProgressRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

// UpsertProgress creates or updates a record, never touching claimed rows.
func (r *MemoryProgressRepository) UpsertProgress(_ context.Context, record *domain.ProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey(record.PlayerID, record.DefinitionID)
	if existing, ok := r.records[key]; ok && existing.IsClaimed() {
		return nil
	}
	r.store(key, record)
	return nil
}

// ReplaceProgress unconditionally overwrites a record, claimed or not.
func (r *MemoryProgressRepository) ReplaceProgress(_ context.Context, record *domain.ProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store(progressKey(record.PlayerID, record.DefinitionID), record)
	return nil
}

// store writes a clone with timestamps maintained. Caller holds r.mu.
func (r *MemoryProgressRepository) store(key string, record *domain.ProgressRecord) {
	clone := cloneRecord(record)
	now := r.now()
	if existing, ok := r.records[key]; ok && !existing.CreatedAt.IsZero() && record.CreatedAt.Equal(existing.CreatedAt) {
		clone.CreatedAt = existing.CreatedAt
	} else if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.records[key] = clone
}

// MarkAsClaimed transitions a record from 'completed' to 'claimed'.
func (r *MemoryProgressRepository) MarkAsClaimed(_ context.Context, playerID, definitionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[progressKey(playerID, definitionID)]
	switch {
	case !ok:
		return errors.ErrProgressNotFound(playerID, definitionID)
	case record.IsClaimed():
		return errors.ErrAlreadyClaimed(definitionID)
	case !record.CanClaim():
		return errors.ErrNotCompleted(definitionID)
	}

	now := r.now()
	record.Status = domain.ProgressClaimed
	record.ClaimedAt = &now
	record.UpdatedAt = now
	return nil
}

// BeginTx snapshots the store and returns a transactional view.
func (r *MemoryProgressRepository) BeginTx(_ context.Context) (TxRepository, error) {
	r.txMu.Lock()

	r.mu.RLock()
	snapshot := make(map[string]*domain.ProgressRecord, len(r.records))
	for key, record := range r.records {
		snapshot[key] = cloneRecord(record)
	}
	r.mu.RUnlock()

	return &memoryTxRepository{repo: r, snapshot: snapshot}, nil
}

// memoryTxRepository applies operations directly and restores the snapshot
// on rollback. Commit simply releases the transaction lock.
type memoryTxRepository struct {
	repo     *MemoryProgressRepository
	snapshot map[string]*domain.ProgressRecord
	done     bool
}

func (t *memoryTxRepository) GetProgress(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error) {
	return t.repo.GetProgress(ctx, playerID, definitionID)
}

func (t *memoryTxRepository) ListPlayerProgress(ctx context.Context, playerID string, kind domain.DefinitionKind) ([]*domain.ProgressRecord, error) {
	return t.repo.ListPlayerProgress(ctx, playerID, kind)
}

func (t *memoryTxRepository) ListDefinitionProgress(ctx context.Context, definitionID string) ([]*domain.ProgressRecord, error) {
	return t.repo.ListDefinitionProgress(ctx, definitionID)
}

func (t *memoryTxRepository) UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error {
	return t.repo.UpsertProgress(ctx, record)
}

func (t *memoryTxRepository) ReplaceProgress(ctx context.Context, record *domain.ProgressRecord) error {
	return t.repo.ReplaceProgress(ctx, record)
}

func (t *memoryTxRepository) MarkAsClaimed(ctx context.Context, playerID, definitionID string) error {
	return t.repo.MarkAsClaimed(ctx, playerID, definitionID)
}

func (t *memoryTxRepository) BeginTx(_ context.Context) (TxRepository, error) {
	return nil, errors.NewEngineError(errors.ErrCodeTransactionFailed, "transaction already open", nil)
}

// GetProgressForUpdate behaves like GetProgress; the transaction lock already
// excludes concurrent transactions.
func (t *memoryTxRepository) GetProgressForUpdate(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error) {
	return t.repo.GetProgress(ctx, playerID, definitionID)
}

func (t *memoryTxRepository) Commit() error {
	if t.done {
		return errors.NewEngineError(errors.ErrCodeTransactionFailed, "transaction already finished", nil)
	}
	t.done = true
	t.repo.txMu.Unlock()
	return nil
}

func (t *memoryTxRepository) Rollback() error {
	if t.done {
		return nil // rollback after commit is a no-op, matching database/sql
	}
	t.done = true

	t.repo.mu.Lock()
	t.repo.records = t.snapshot
	t.repo.mu.Unlock()

	t.repo.txMu.Unlock()
	return nil
}
