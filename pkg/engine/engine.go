package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"progression-engine/pkg/catalog"
	"progression-engine/pkg/client"
	"progression-engine/pkg/common"
	"progression-engine/pkg/domain"
	apperrors "progression-engine/pkg/errors"
	"progression-engine/pkg/metrics"
	"progression-engine/pkg/repository"
)

// Engine is the progression core: it matches incoming player events against
// the definition catalog, accumulates progress, drives the
// in_progress -> completed -> claimed state machine and issues rewards on
// claim. The engine holds no global state; every collaborator is injected.
type Engine struct {
	catalog catalog.Catalog
	repo    repository.ProgressRepository
	rewards client.RewardClient
	logger  *slog.Logger

	// clock is replaceable in tests to drive cycle windows.
	clock func() time.Time

	// locks serializes the read-modify-write of one (player, definition)
	// record against concurrent events for the same pair.
	locks *common.KeyMutex
}

// New creates an engine wired to its collaborators.
func New(cat catalog.Catalog, repo repository.ProgressRepository, rewards client.RewardClient, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: cat,
		repo:    repo,
		rewards: rewards,
		logger:  logger,
		clock:   time.Now,
		locks:   common.NewKeyMutex(),
	}
}

var allKinds = []domain.DefinitionKind{
	domain.KindAchievement,
	domain.KindChallenge,
	domain.KindQuest,
}

// RecordEvent fans one behavioral event out across all matching active
// definitions and persists the resulting progress mutations. It never issues
// rewards; completion only arms the record for a later explicit claim.
//
// Misconfigured definitions are skipped silently so one bad catalog entry
// cannot block the others. Store failures are logged per definition and the
// first one is returned after the fan-out finishes.
func (e *Engine) RecordEvent(ctx context.Context, playerID string, event *domain.Event) error {
	if playerID == "" {
		return apperrors.ErrValidationFailed("player_id", "must not be empty")
	}
	if !event.Type.IsValid() {
		metrics.EventsRejected.WithLabelValues(string(event.Type)).Inc()
		return apperrors.ErrValidationFailed("type", "unknown trigger type")
	}

	now := e.clock()
	var firstErr error
	for _, kind := range allKinds {
		for _, def := range e.catalog.ActiveByTrigger(kind, event.Type) {
			if !Matches(def, event) {
				continue
			}
			metrics.DefinitionsMatched.WithLabelValues(string(kind), string(event.Type)).Inc()
			if err := e.applyToDefinition(ctx, playerID, def, event, now); err != nil {
				e.logger.Error("failed to apply event to definition",
					slog.String("player_id", playerID),
					slog.String("definition_id", def.ID),
					slog.Any("error", err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	metrics.EventsProcessed.WithLabelValues(string(event.Type)).Inc()
	return firstErr
}

// applyToDefinition performs the locked read-modify-write of one (player,
// definition) record for one event.
func (e *Engine) applyToDefinition(ctx context.Context, playerID string, def *domain.Definition, event *domain.Event, now time.Time) error {
	lockKey := playerID + "|" + def.ID
	e.locks.Lock(lockKey)
	defer e.locks.Unlock(lockKey)

	record, err := e.repo.GetProgress(ctx, playerID, def.ID)
	if err != nil {
		return apperrors.ErrStoreError("get progress", err)
	}

	replace := false
	isNew := record == nil

	if def.Kind == domain.KindChallenge {
		if !withinSchedule(def, now) {
			return nil
		}
		if record != nil && record.CycleLapsed(now) {
			if !def.AutoReset {
				// Frozen at its final value until external re-activation.
				return nil
			}
			record = newCycleRecord(def, playerID, now)
			replace = true
			isNew = true
			metrics.CycleResets.WithLabelValues(string(def.Frequency)).Inc()
		}
		if record == nil {
			record = newCycleRecord(def, playerID, now)
			isNew = true
		}
	}

	if record == nil {
		record = &domain.ProgressRecord{
			PlayerID:     playerID,
			DefinitionID: def.ID,
			Kind:         def.Kind,
			Status:       domain.ProgressInProgress,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if record.Status != domain.ProgressInProgress {
		// Completed records wait for their claim; claimed records are never
		// regressed by further events in the same cycle.
		return nil
	}

	var advanced bool
	if def.Kind == domain.KindQuest {
		advanced = applyQuestEvent(def, event, record)
		if record.AllStepsCompleted() {
			record.ProgressPercent = 100
		}
	} else {
		update, ok := Accumulate(def.Trigger, event, record.CurrentValue, record.SecondaryValue)
		if !ok {
			// Misconfigured trigger, skip the definition entirely.
			return nil
		}
		advanced = update.Advanced
		record.CurrentValue = update.Value
		record.SecondaryValue = update.Secondary
		record.TargetValue = update.Target
		record.ProgressPercent = update.Percent
	}

	if !advanced && !isNew {
		return nil
	}

	record.UpdatedAt = now
	if record.ProgressPercent >= 100 && record.Status == domain.ProgressInProgress {
		record.Status = domain.ProgressCompleted
		completedAt := now
		record.CompletedAt = &completedAt
		metrics.Completions.WithLabelValues(string(def.Kind)).Inc()
		e.logger.Info("definition completed",
			slog.String("player_id", playerID),
			slog.String("definition_id", def.ID),
			slog.String("kind", string(def.Kind)))
	}

	if replace {
		err = e.repo.ReplaceProgress(ctx, record)
	} else {
		err = e.repo.UpsertProgress(ctx, record)
	}
	if err != nil {
		return apperrors.ErrStoreError("upsert progress", err)
	}
	return nil
}

// Claim issues the reward of a completed definition exactly once and
// transitions the record to claimed.
//
// The whole flow runs inside one store transaction with the record locked:
// every reward component is resolved up front, then issued, then the status
// transition is committed. A failure at any point rolls back and leaves the
// record completed, so the claim is safely retryable; a repeated claim of an
// already claimed record fails without touching the wallet.
func (e *Engine) Claim(ctx context.Context, playerID, definitionID string) error {
	def := e.catalog.GetDefinition(definitionID)
	if def == nil {
		return apperrors.ErrDefinitionNotFound(definitionID)
	}

	tx, err := e.repo.BeginTx(ctx)
	if err != nil {
		return apperrors.ErrStoreError("begin claim transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	record, err := tx.GetProgressForUpdate(ctx, playerID, definitionID)
	if err != nil {
		return apperrors.ErrStoreError("lock progress", err)
	}
	if record == nil {
		e.countClaim(def.Kind, metrics.ClaimResultBlocked)
		return apperrors.ErrProgressNotFound(playerID, definitionID)
	}
	if record.IsClaimed() {
		e.countClaim(def.Kind, metrics.ClaimResultAlready)
		return apperrors.ErrAlreadyClaimed(definitionID)
	}
	if !record.CanClaim() {
		e.countClaim(def.Kind, metrics.ClaimResultBlocked)
		return apperrors.ErrNotCompleted(definitionID)
	}

	// Resolve every reward component before issuing anything: a claim either
	// grants the full reward or nothing.
	points, template, err := e.resolveReward(def)
	if err != nil {
		e.countClaim(def.Kind, metrics.ClaimResultFailed)
		return err
	}

	if points > 0 {
		if err := e.rewards.CreditWallet(ctx, playerID, points); err != nil {
			e.countClaim(def.Kind, metrics.ClaimResultFailed)
			return apperrors.ErrRewardGrantFailed("points", definitionID, err)
		}
		metrics.RewardsIssued.WithLabelValues(string(domain.RewardPoints)).Inc()
	}
	if template != nil {
		instance := domain.NewBonusInstance(uuid.NewString(), playerID, template, def.ID, def.Kind, e.clock())
		if err := e.rewards.MintBonus(ctx, instance); err != nil {
			e.countClaim(def.Kind, metrics.ClaimResultFailed)
			return apperrors.ErrRewardGrantFailed("bonus", definitionID, err)
		}
		metrics.RewardsIssued.WithLabelValues(string(domain.RewardBonus)).Inc()
	}

	if err := tx.MarkAsClaimed(ctx, playerID, definitionID); err != nil {
		e.countClaim(def.Kind, metrics.ClaimResultFailed)
		return err
	}
	if err := tx.Commit(); err != nil {
		e.countClaim(def.Kind, metrics.ClaimResultFailed)
		return apperrors.ErrStoreError("commit claim", err)
	}

	e.countClaim(def.Kind, metrics.ClaimResultSuccess)
	e.logger.Info("reward claimed",
		slog.String("player_id", playerID),
		slog.String("definition_id", definitionID),
		slog.String("kind", string(def.Kind)),
		slog.Int("points", points))
	return nil
}

// resolveReward resolves the configured reward components of a definition.
// Returns the points to credit (0 when none) and the bonus template to mint
// from (nil when none). A reward that resolves to nothing usable fails the
// claim entirely.
func (e *Engine) resolveReward(def *domain.Definition) (int, *domain.BonusTemplate, error) {
	points := 0
	if def.Reward.GrantsPoints() {
		if def.Reward.Points <= 0 {
			return 0, nil, apperrors.ErrRewardNotConfigured(def.ID)
		}
		points = def.Reward.Points
	}

	var template *domain.BonusTemplate
	if def.Reward.GrantsBonus() {
		if def.Reward.BonusTemplateID == "" {
			return 0, nil, apperrors.ErrRewardNotConfigured(def.ID)
		}
		template = e.catalog.GetBonusTemplate(def.Reward.BonusTemplateID)
		if template == nil {
			return 0, nil, apperrors.ErrBonusTemplateNotFound(def.Reward.BonusTemplateID)
		}
	}

	if points == 0 && template == nil {
		return 0, nil, apperrors.ErrRewardNotConfigured(def.ID)
	}
	return points, template, nil
}

func (e *Engine) countClaim(kind domain.DefinitionKind, result string) {
	metrics.Claims.WithLabelValues(string(kind), result).Inc()
}

// SweepLapsedCycles replaces lapsed cycle records of auto-reset challenges
// with fresh ones for the current window. RecordEvent already resets lapsed
// records lazily; the sweep keeps read APIs current for players who stopped
// producing events. Intended to run on a schedule.
func (e *Engine) SweepLapsedCycles(ctx context.Context) error {
	now := e.clock()
	var firstErr error
	for _, def := range e.catalog.ActiveDefinitions(domain.KindChallenge) {
		if !def.AutoReset || !withinSchedule(def, now) {
			continue
		}
		records, err := e.repo.ListDefinitionProgress(ctx, def.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = apperrors.ErrStoreError("list definition progress", err)
			}
			continue
		}
		for _, record := range records {
			if !record.CycleLapsed(now) {
				continue
			}
			if err := e.resetLapsedRecord(ctx, def, record.PlayerID, now); err != nil {
				e.logger.Error("failed to reset lapsed cycle",
					slog.String("player_id", record.PlayerID),
					slog.String("definition_id", def.ID),
					slog.Any("error", err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}

func (e *Engine) resetLapsedRecord(ctx context.Context, def *domain.Definition, playerID string, now time.Time) error {
	lockKey := playerID + "|" + def.ID
	e.locks.Lock(lockKey)
	defer e.locks.Unlock(lockKey)

	// Re-check under the lock; an event may have reset the record already.
	record, err := e.repo.GetProgress(ctx, playerID, def.ID)
	if err != nil {
		return apperrors.ErrStoreError("get progress", err)
	}
	if record == nil || !record.CycleLapsed(now) {
		return nil
	}

	fresh := newCycleRecord(def, playerID, now)
	if err := e.repo.ReplaceProgress(ctx, fresh); err != nil {
		return apperrors.ErrStoreError("replace progress", err)
	}
	metrics.CycleResets.WithLabelValues(string(def.Frequency)).Inc()
	return nil
}

// GetProgress returns one player's record for a definition, or nil when the
// player has not started it.
func (e *Engine) GetProgress(ctx context.Context, playerID, definitionID string) (*domain.ProgressRecord, error) {
	return e.repo.GetProgress(ctx, playerID, definitionID)
}

// ListPlayerProgress returns all of a player's records, optionally filtered
// by definition kind (empty kind means all).
func (e *Engine) ListPlayerProgress(ctx context.Context, playerID string, kind domain.DefinitionKind) ([]*domain.ProgressRecord, error) {
	return e.repo.ListPlayerProgress(ctx, playerID, kind)
}
