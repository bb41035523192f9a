package engine

import "progression-engine/pkg/domain"

// applyQuestEvent matches an event against every step of a quest
// independently and accumulates the matching ones. Steps completed earlier
// stay completed; completion order does not matter. Returns true when at
// least one step changed.
//
// The quest-level record completes when every step is completed; its overall
// percentage is completed-step-count / total-step-count.
func applyQuestEvent(def *domain.Definition, event *domain.Event, record *domain.ProgressRecord) bool {
	if record.Steps == nil {
		record.Steps = make(map[string]*domain.StepProgress, len(def.Steps))
	}
	// The record carries one sub-record per definition step, untouched steps
	// included, so completion checks always run against the full step count.
	for _, step := range def.Steps {
		if record.Steps[step.ID] == nil {
			record.Steps[step.ID] = &domain.StepProgress{}
		}
	}

	changed := false
	for _, step := range def.Steps {
		if step.Trigger.Type != event.Type {
			continue
		}
		sp := record.Steps[step.ID]
		if sp.Completed {
			continue
		}
		if accumulateStep(step.Trigger, event, sp) {
			changed = true
		}
	}

	record.ProgressPercent = record.OverallStepProgress()
	record.CurrentValue = float64(completedStepCount(record))
	record.TargetValue = float64(len(def.Steps))
	return changed
}

// accumulateStep advances one step's sub-record. Steps track a restricted
// set of native accumulation rules (login_streak, deposit, game_turnover);
// every other trigger type falls back to counting matching events against
// the step's configured count target.
func accumulateStep(trigger domain.Trigger, event *domain.Event, sp *domain.StepProgress) bool {
	switch trigger.Type {
	case domain.TriggerLoginStreak:
		return advanceStep(sp, sp.CurrentValue+1, float64(trigger.Days))

	case domain.TriggerDeposit:
		return advanceStep(sp, sp.CurrentValue+1, float64(trigger.Count))

	case domain.TriggerGameTurnover:
		if trigger.MinimumAmount > 0 && event.Amount < trigger.MinimumAmount {
			return false
		}
		return advanceStep(sp, sp.CurrentValue+event.Amount, trigger.Quantity)

	default:
		return advanceStep(sp, sp.CurrentValue+1, genericStepTarget(trigger))
	}
}

// genericStepTarget resolves the count target for the fallback rule from
// whichever target parameter the step configures.
func genericStepTarget(trigger domain.Trigger) float64 {
	switch {
	case trigger.Count > 0:
		return float64(trigger.Count)
	case trigger.Quantity > 0:
		return trigger.Quantity
	case trigger.Days > 0:
		return float64(trigger.Days)
	case trigger.Amount > 0:
		return trigger.Amount
	default:
		return 0
	}
}

func advanceStep(sp *domain.StepProgress, value, target float64) bool {
	if target <= 0 {
		// Misconfigured step, never advances.
		return false
	}
	sp.CurrentValue = value
	sp.TargetValue = target
	sp.ProgressPercent = percentOf(value, target)
	if value >= target {
		sp.ProgressPercent = 100
		sp.Completed = true
	}
	return true
}

func completedStepCount(record *domain.ProgressRecord) int {
	n := 0
	for _, sp := range record.Steps {
		if sp.Completed {
			n++
		}
	}
	return n
}
