package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"progression-engine/pkg/domain"
	"progression-engine/pkg/errors"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting the same query code serve both the plain and transactional
// repositories.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const progressColumns = `
	player_id, definition_id, kind, current_value, secondary_value,
	target_value, progress_percent, status, cycle_start, cycle_end,
	steps, completed_at, claimed_at, created_at, updated_at`

// PostgresProgressRepository implements ProgressRepository using PostgreSQL.
// Quest step sub-records are stored as a JSONB document per row.
type PostgresProgressRepository struct {
	db *sql.DB
	q  querier
}

// NewPostgresProgressRepository creates a new PostgreSQL-backed progress
// repository.
func NewPostgresProgressRepository(db *sql.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db, q: db}
}

// scanProgressRow scans one row into a ProgressRecord, decoding the steps
// JSONB column when present.
func scanProgressRow(scan func(dest ...any) error) (*domain.ProgressRecord, error) {
	var record domain.ProgressRecord
	var stepsRaw []byte

	err := scan(
		&record.PlayerID,
		&record.DefinitionID,
		&record.Kind,
		&record.CurrentValue,
		&record.SecondaryValue,
		&record.TargetValue,
		&record.ProgressPercent,
		&record.Status,
		&record.CycleStart,
		&record.CycleEnd,
		&stepsRaw,
		&record.CompletedAt,
		&record.ClaimedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(stepsRaw) > 0 {
		if err := json.Unmarshal(stepsRaw, &record.Steps); err != nil {
			return nil, err
		}
	}
	return &record, nil
}

// encodeSteps marshals the steps map for the JSONB column. Records without
// steps store NULL.
func encodeSteps(record *domain.ProgressRecord) (any, error) {
	if len(record.Steps) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(record.Steps)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetProgress retrieves a single player's progress for a definition.
func (r *PostgresProgressRepository) GetProgress(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + `
		FROM player_progress
		WHERE player_id = $1 AND definition_id = $2`

	record, err := scanProgressRow(r.q.QueryRowContext(ctx, query, playerID, definitionID).Scan)
	if err == sql.ErrNoRows {
		return nil, nil // No progress record exists (lazy initialization)
	}
	if err != nil {
		return nil, errors.ErrStoreError("get progress", err)
	}
	return record, nil
}

// ListPlayerProgress retrieves all progress records for a player, optionally
// filtered by definition kind.
func (r *PostgresProgressRepository) ListPlayerProgress(ctx context.Context, playerID string, kind domain.DefinitionKind) ([]*domain.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + `
		FROM player_progress
		WHERE player_id = $1`
	args := []any{playerID}

	if kind != "" {
		query += " AND kind = $2"
		args = append(args, kind)
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.ErrStoreError("list player progress", err)
	}
	defer func() { _ = rows.Close() }()

	return collectProgressRows(rows)
}

// ListDefinitionProgress retrieves all players' records for one definition.
func (r *PostgresProgressRepository) ListDefinitionProgress(ctx context.Context, definitionID string) ([]*domain.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + `
		FROM player_progress
		WHERE definition_id = $1
		ORDER BY created_at ASC`

	rows, err := r.q.QueryContext(ctx, query, definitionID)
	if err != nil {
		return nil, errors.ErrStoreError("list definition progress", err)
	}
	defer func() { _ = rows.Close() }()

	return collectProgressRows(rows)
}

func collectProgressRows(rows *sql.Rows) ([]*domain.ProgressRecord, error) {
	records := make([]*domain.ProgressRecord, 0)
	for rows.Next() {
		record, err := scanProgressRow(rows.Scan)
		if err != nil {
			return nil, errors.ErrStoreError("scan progress row", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrStoreError("iterate progress rows", err)
	}
	return records, nil
}

// UpsertProgress creates or updates a single progress record.
// The stored row is not touched when its status is already 'claimed'.
func (r *PostgresProgressRepository) UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error {
	return r.upsert(ctx, record, true)
}

// ReplaceProgress unconditionally overwrites a record, claimed or not.
// Only the challenge cycle reset uses this path.
func (r *PostgresProgressRepository) ReplaceProgress(ctx context.Context, record *domain.ProgressRecord) error {
	return r.upsert(ctx, record, false)
}

func (r *PostgresProgressRepository) upsert(ctx context.Context, record *domain.ProgressRecord, guardClaimed bool) error {
	steps, err := encodeSteps(record)
	if err != nil {
		return errors.ErrStoreError("encode steps", err)
	}

	query := `
		INSERT INTO player_progress (
			player_id, definition_id, kind, current_value, secondary_value,
			target_value, progress_percent, status, cycle_start, cycle_end,
			steps, completed_at, claimed_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		)
		ON CONFLICT (player_id, definition_id) DO UPDATE SET
			kind = EXCLUDED.kind,
			current_value = EXCLUDED.current_value,
			secondary_value = EXCLUDED.secondary_value,
			target_value = EXCLUDED.target_value,
			progress_percent = EXCLUDED.progress_percent,
			status = EXCLUDED.status,
			cycle_start = EXCLUDED.cycle_start,
			cycle_end = EXCLUDED.cycle_end,
			steps = EXCLUDED.steps,
			completed_at = EXCLUDED.completed_at,
			claimed_at = EXCLUDED.claimed_at,
			updated_at = NOW()`
	if guardClaimed {
		query += `
		WHERE player_progress.status != 'claimed'`
	}

	_, err = r.q.ExecContext(ctx, query,
		record.PlayerID,
		record.DefinitionID,
		record.Kind,
		record.CurrentValue,
		record.SecondaryValue,
		record.TargetValue,
		record.ProgressPercent,
		record.Status,
		record.CycleStart,
		record.CycleEnd,
		steps,
		record.CompletedAt,
		record.ClaimedAt,
	)
	if err != nil {
		return errors.ErrStoreError("upsert progress", err)
	}
	return nil
}

// MarkAsClaimed transitions a record from 'completed' to 'claimed'.
func (r *PostgresProgressRepository) MarkAsClaimed(ctx context.Context, playerID, definitionID string) error {
	query := `
		UPDATE player_progress
		SET status = 'claimed', claimed_at = NOW(), updated_at = NOW()
		WHERE player_id = $1 AND definition_id = $2 AND status = 'completed'`

	result, err := r.q.ExecContext(ctx, query, playerID, definitionID)
	if err != nil {
		return errors.ErrStoreError("mark as claimed", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrStoreError("mark as claimed", err)
	}
	if affected > 0 {
		return nil
	}

	// Distinguish why the guarded update matched nothing.
	record, err := r.GetProgress(ctx, playerID, definitionID)
	if err != nil {
		return err
	}
	switch {
	case record == nil:
		return errors.ErrProgressNotFound(playerID, definitionID)
	case record.IsClaimed():
		return errors.ErrAlreadyClaimed(definitionID)
	default:
		return errors.ErrNotCompleted(definitionID)
	}
}

// BeginTx starts a database transaction and returns a transactional
// repository bound to it.
func (r *PostgresProgressRepository) BeginTx(ctx context.Context) (TxRepository, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewEngineError(errors.ErrCodeTransactionFailed, "begin transaction", err)
	}
	return &postgresTxRepository{PostgresProgressRepository: PostgresProgressRepository{db: r.db, q: tx}, tx: tx}, nil
}

// postgresTxRepository runs the same queries inside a transaction.
type postgresTxRepository struct {
	PostgresProgressRepository
	tx *sql.Tx
}

// GetProgressForUpdate retrieves a record with SELECT ... FOR UPDATE,
// blocking concurrent claim attempts for the same row.
func (r *postgresTxRepository) GetProgressForUpdate(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + `
		FROM player_progress
		WHERE player_id = $1 AND definition_id = $2
		FOR UPDATE`

	record, err := scanProgressRow(r.q.QueryRowContext(ctx, query, playerID, definitionID).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.ErrStoreError("get progress for update", err)
	}
	return record, nil
}

// BeginTx on an open transaction is invalid.
func (r *postgresTxRepository) BeginTx(ctx context.Context) (TxRepository, error) {
	return nil, errors.NewEngineError(errors.ErrCodeTransactionFailed, "transaction already open", nil)
}

func (r *postgresTxRepository) Commit() error {
	if err := r.tx.Commit(); err != nil {
		return errors.NewEngineError(errors.ErrCodeTransactionFailed, "commit transaction", err)
	}
	return nil
}

func (r *postgresTxRepository) Rollback() error {
	if err := r.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return errors.NewEngineError(errors.ErrCodeTransactionFailed, "rollback transaction", err)
	}
	return nil
}
