package engine

import (
	"time"

	"progression-engine/pkg/domain"
)

// CycleBounds returns the cycle window of a challenge that covers now.
// Windows are anchored at the challenge start date and advance by the
// frequency's period (daily +1 day, weekly +7 days, monthly +1 calendar
// month) until the window end passes now. If now precedes the start date the
// first window is returned.
func CycleBounds(frequency domain.Frequency, start, now time.Time) (time.Time, time.Time) {
	cycleStart := start
	cycleEnd := advanceCycle(frequency, cycleStart)
	for !now.Before(cycleEnd) {
		cycleStart = cycleEnd
		cycleEnd = advanceCycle(frequency, cycleStart)
	}
	return cycleStart, cycleEnd
}

func advanceCycle(frequency domain.Frequency, from time.Time) time.Time {
	switch frequency {
	case domain.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case domain.FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default:
		// Unknown frequency, treat as daily.
		return from.AddDate(0, 0, 1)
	}
}

// newCycleRecord creates a fresh progress record for the challenge cycle
// window covering now. Used both for lazy initialization and for replacing a
// lapsed auto-reset cycle.
func newCycleRecord(def *domain.Definition, playerID string, now time.Time) *domain.ProgressRecord {
	cycleStart, cycleEnd := CycleBounds(def.Frequency, def.StartDate, now)
	return &domain.ProgressRecord{
		PlayerID:     playerID,
		DefinitionID: def.ID,
		Kind:         def.Kind,
		Status:       domain.ProgressInProgress,
		CycleStart:   &cycleStart,
		CycleEnd:     &cycleEnd,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// withinSchedule reports whether a challenge accepts progress at the given
// time: on or after its start date and, when an end date is set, not after it.
func withinSchedule(def *domain.Definition, now time.Time) bool {
	if now.Before(def.StartDate) {
		return false
	}
	if def.EndDate != nil && now.After(*def.EndDate) {
		return false
	}
	return true
}
