package domain

import "time"

// ProgressStatus represents the lifecycle state of a progress record.
// Absence of a record means the player has not started the definition.
type ProgressStatus string

const (
	// ProgressInProgress indicates the player has made some progress.
	ProgressInProgress ProgressStatus = "in_progress"

	// ProgressCompleted indicates the target has been met but the reward
	// has not been claimed yet.
	ProgressCompleted ProgressStatus = "completed"

	// ProgressClaimed indicates the reward has been issued. Terminal for
	// the current cycle; further events never regress a claimed record.
	ProgressClaimed ProgressStatus = "claimed"
)

// IsValid returns true if the status is a valid progress status.
func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressInProgress, ProgressCompleted, ProgressClaimed:
		return true
	default:
		return false
	}
}

// StepProgress tracks a single quest step for one player.
type StepProgress struct {
	CurrentValue    float64 `json:"current_value"`
	TargetValue     float64 `json:"target_value"`
	ProgressPercent float64 `json:"progress_percent"`
	Completed       bool    `json:"completed"`
}

// ProgressRecord tracks one player's progress toward one definition.
// Records are lazily initialized on the first matching event.
type ProgressRecord struct {
	PlayerID     string         `json:"player_id" db:"player_id"`
	DefinitionID string         `json:"definition_id" db:"definition_id"`
	Kind         DefinitionKind `json:"kind" db:"kind"`

	// CurrentValue is the accumulated metric value. SecondaryValue backs
	// dual-target metrics (withdrawal: count in CurrentValue, amount in
	// SecondaryValue); it is zero for every other trigger type.
	CurrentValue   float64 `json:"current_value" db:"current_value"`
	SecondaryValue float64 `json:"secondary_value,omitempty" db:"secondary_value"`

	TargetValue     float64        `json:"target_value" db:"target_value"`
	ProgressPercent float64        `json:"progress_percent" db:"progress_percent"`
	Status          ProgressStatus `json:"status" db:"status"`

	// Challenge-only cycle window.
	CycleStart *time.Time `json:"cycle_start,omitempty" db:"cycle_start"`
	CycleEnd   *time.Time `json:"cycle_end,omitempty" db:"cycle_end"`

	// Quest-only per-step sub-records, keyed by step ID. Holds one entry per
	// definition step, untouched steps included, so the completion helpers
	// below can derive quest progress from the map alone.
	Steps map[string]*StepProgress `json:"steps,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty" db:"claimed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsCompleted returns true if the record is in completed or claimed status.
func (p *ProgressRecord) IsCompleted() bool {
	return p.Status == ProgressCompleted || p.Status == ProgressClaimed
}

// IsClaimed returns true if the reward has been claimed.
func (p *ProgressRecord) IsClaimed() bool {
	return p.Status == ProgressClaimed
}

// CanClaim returns true if the record can be claimed (completed, not claimed).
func (p *ProgressRecord) CanClaim() bool {
	return p.Status == ProgressCompleted
}

// CycleLapsed returns true when the record belongs to a challenge cycle
// whose window has ended before now. Records without a cycle never lapse.
func (p *ProgressRecord) CycleLapsed(now time.Time) bool {
	return p.CycleEnd != nil && now.After(*p.CycleEnd)
}

// OverallStepProgress returns the quest-level percentage derived from
// completed steps: completed-step-count / total-step-count * 100.
// Returns 0 for records without steps.
func (p *ProgressRecord) OverallStepProgress() float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	completed := 0
	for _, s := range p.Steps {
		if s.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(p.Steps)) * 100
}

// AllStepsCompleted returns true iff the record has steps and every step is
// completed.
func (p *ProgressRecord) AllStepsCompleted() bool {
	if len(p.Steps) == 0 {
		return false
	}
	for _, s := range p.Steps {
		if !s.Completed {
			return false
		}
	}
	return true
}
