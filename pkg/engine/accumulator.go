package engine

import "progression-engine/pkg/domain"

// Update is the outcome of applying one matching event to a progress value.
//
// Value and Secondary are the new stored values. Secondary is only used by
// dual-target triggers (withdrawal tracks count in Value and amount in
// Secondary); it stays zero for everything else. Target is the effective
// target the percentage was computed against; for dual-target triggers it is
// the target whose fractional progress is currently higher.
type Update struct {
	Value     float64
	Secondary float64
	Target    float64
	Percent   float64

	// Advanced reports whether the event changed the stored values. Events
	// below a configured minimum, losses on win counters and unmatched
	// verification types leave the record untouched.
	Advanced bool
}

// Accumulate applies an event to the current progress of a trigger and
// returns the updated values. The second return value is false when the
// trigger is misconfigured (no usable target); such definitions are never
// advanced and the caller skips them silently.
//
// Accumulation rules per trigger type:
//   - counters (+1): login_streak, deposit, winning_bets_count,
//     game_transaction, specific_game_engagement, market_specific_bets
//   - sums: game_turnover, total_win_amount, total_deposit_amount,
//     referral_count, net_result
//   - maximum: max_single_win
//   - streak with reset: consecutive_wins
//   - absolute set: account_longevity, user_verification, profile_completion
//   - dual-target: withdrawal (count and amount in parallel)
func Accumulate(trigger domain.Trigger, event *domain.Event, current, secondary float64) (Update, bool) {
	switch trigger.Type {
	case domain.TriggerLoginStreak:
		return counterUpdate(current, 1, float64(trigger.Days))

	case domain.TriggerGameTurnover:
		target := trigger.Quantity
		if target <= 0 {
			return Update{}, false
		}
		if trigger.MinimumAmount > 0 && event.Amount < trigger.MinimumAmount {
			return holdUpdate(current, secondary, target), true
		}
		return sumUpdate(current, event.Amount, target)

	case domain.TriggerGameTransaction:
		target := trigger.Quantity
		if target <= 0 {
			return Update{}, false
		}
		if trigger.MinimumAmount > 0 && event.Amount < trigger.MinimumAmount {
			return holdUpdate(current, secondary, target), true
		}
		return counterUpdate(current, 1, target)

	case domain.TriggerDeposit:
		return counterUpdate(current, 1, float64(trigger.Count))

	case domain.TriggerUserVerification:
		if trigger.VerificationType != "" && event.VerificationType != trigger.VerificationType {
			return holdUpdate(current, secondary, 1), true
		}
		return setUpdate(current, 1, 1)

	case domain.TriggerWinningBetsCount:
		if !event.IsWin {
			return holdUpdate(current, secondary, float64(trigger.Count)), true
		}
		return counterUpdate(current, 1, float64(trigger.Count))

	case domain.TriggerTotalWinAmount:
		if !event.IsWin {
			return holdUpdate(current, secondary, trigger.Amount), true
		}
		return sumUpdate(current, event.WinAmount, trigger.Amount)

	case domain.TriggerMaxSingleWin:
		return maxSingleWinUpdate(trigger, event, current)

	case domain.TriggerConsecutiveWins:
		return consecutiveWinsUpdate(trigger, event, current)

	case domain.TriggerSpecificGameEngagement:
		if trigger.GameID != "" && event.GameID != trigger.GameID && event.EventID != trigger.GameID {
			return holdUpdate(current, secondary, float64(trigger.Count)), true
		}
		return counterUpdate(current, 1, float64(trigger.Count))

	case domain.TriggerMarketSpecificBets:
		if trigger.MarketType != "" && event.MarketType != trigger.MarketType {
			return holdUpdate(current, secondary, trigger.Quantity), true
		}
		return counterUpdate(current, 1, trigger.Quantity)

	case domain.TriggerTotalDepositAmount:
		return sumUpdate(current, event.Amount, trigger.Amount)

	case domain.TriggerWithdrawal:
		return withdrawalUpdate(trigger, event, current, secondary)

	case domain.TriggerReferralCount:
		referrals := float64(event.Referrals)
		if referrals <= 0 {
			referrals = 1
		}
		return sumUpdate(current, referrals, float64(trigger.Count))

	case domain.TriggerAccountLongevity:
		return setUpdate(current, float64(event.AccountAgeDays), float64(trigger.Days))

	case domain.TriggerProfileCompletion:
		if !event.ProfileCompleted {
			return holdUpdate(current, secondary, 1), true
		}
		return setUpdate(current, 1, 1)

	case domain.TriggerNetResult:
		return netResultUpdate(trigger, event, current)

	default:
		// Unknown trigger type, skip the definition.
		return Update{}, false
	}
}

// percentOf computes min(100, value/target*100).
func percentOf(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := value / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// holdUpdate keeps the current values unchanged for an event that matched
// the trigger type but did not advance it.
func holdUpdate(current, secondary, target float64) Update {
	return Update{
		Value:     current,
		Secondary: secondary,
		Target:    target,
		Percent:   percentOf(current, target),
		Advanced:  false,
	}
}

func counterUpdate(current, delta, target float64) (Update, bool) {
	if target <= 0 {
		return Update{}, false
	}
	value := current + delta
	return Update{
		Value:    value,
		Target:   target,
		Percent:  percentOf(value, target),
		Advanced: true,
	}, true
}

func sumUpdate(current, delta, target float64) (Update, bool) {
	return counterUpdate(current, delta, target)
}

func setUpdate(current, value, target float64) (Update, bool) {
	if target <= 0 {
		return Update{}, false
	}
	return Update{
		Value:    value,
		Target:   target,
		Percent:  percentOf(value, target),
		Advanced: value != current,
	}, true
}

// maxSingleWinUpdate keeps the highest single win seen and forces completion
// once the maximum reaches the configured minimum. The target represents a
// threshold, not a cumulative sum, so completion sets 100 directly.
func maxSingleWinUpdate(trigger domain.Trigger, event *domain.Event, current float64) (Update, bool) {
	threshold := trigger.MinimumAmount
	if threshold <= 0 {
		return Update{}, false
	}
	value := current
	advanced := false
	if event.IsWin && event.WinAmount > value {
		value = event.WinAmount
		advanced = true
	}
	percent := percentOf(value, threshold)
	if value >= threshold {
		percent = 100
	}
	return Update{
		Value:    value,
		Target:   threshold,
		Percent:  percent,
		Advanced: advanced,
	}, true
}

// consecutiveWinsUpdate increments on wins and resets to zero on a loss.
// The reset is the one place a record's percentage may decrease outside of a
// cycle reset.
func consecutiveWinsUpdate(trigger domain.Trigger, event *domain.Event, current float64) (Update, bool) {
	target := float64(trigger.Count)
	if target <= 0 {
		return Update{}, false
	}
	value := current + 1
	if !event.IsWin {
		value = 0
	}
	return Update{
		Value:    value,
		Target:   target,
		Percent:  percentOf(value, target),
		Advanced: value != current,
	}, true
}

// withdrawalUpdate tracks a running count and a running amount in parallel.
// Effective progress is the higher of the two fractional progresses against
// whichever targets are configured, and the record completes as soon as
// either target is reached. When both fractions are equal the amount target
// takes precedence as the effective target.
func withdrawalUpdate(trigger domain.Trigger, event *domain.Event, current, secondary float64) (Update, bool) {
	countTarget := float64(trigger.Count)
	amountTarget := trigger.Amount
	if countTarget <= 0 && amountTarget <= 0 {
		return Update{}, false
	}

	count := current + 1
	amount := secondary + event.Amount

	countPct := 0.0
	if countTarget > 0 {
		countPct = percentOf(count, countTarget)
	}
	amountPct := 0.0
	if amountTarget > 0 {
		amountPct = percentOf(amount, amountTarget)
	}

	target := countTarget
	percent := countPct
	if amountTarget > 0 && amountPct >= countPct {
		target = amountTarget
		percent = amountPct
	}
	if (countTarget > 0 && count >= countTarget) || (amountTarget > 0 && amount >= amountTarget) {
		percent = 100
	}

	return Update{
		Value:     count,
		Secondary: amount,
		Target:    target,
		Percent:   percent,
		Advanced:  true,
	}, true
}

// netResultUpdate accumulates a signed running result and completes when it
// crosses the configured net-win threshold upward or the configured net-loss
// threshold downward. Both thresholds are expressed as positive magnitudes.
func netResultUpdate(trigger domain.Trigger, event *domain.Event, current float64) (Update, bool) {
	winTarget := trigger.NetWinTarget
	lossTarget := trigger.NetLossTarget
	if winTarget <= 0 && lossTarget <= 0 {
		return Update{}, false
	}

	value := current + event.NetDelta

	winPct := 0.0
	if winTarget > 0 && value > 0 {
		winPct = percentOf(value, winTarget)
	}
	lossPct := 0.0
	if lossTarget > 0 && value < 0 {
		lossPct = percentOf(-value, lossTarget)
	}

	target := winTarget
	percent := winPct
	if lossPct > winPct {
		target = lossTarget
		percent = lossPct
	}
	if target <= 0 {
		target = lossTarget
	}
	if (winTarget > 0 && value >= winTarget) || (lossTarget > 0 && value <= -lossTarget) {
		percent = 100
	}

	return Update{
		Value:    value,
		Target:   target,
		Percent:  percent,
		Advanced: event.NetDelta != 0,
	}, true
}
