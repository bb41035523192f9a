package domain

import "time"

// DefinitionKind identifies which catalog a reward definition belongs to.
type DefinitionKind string

const (
	// KindAchievement is a one-shot definition: completed and claimed at most once.
	KindAchievement DefinitionKind = "achievement"

	// KindChallenge is a recurring definition tracked inside a bounded cycle
	// window (daily/weekly/monthly). With auto-reset enabled, a lapsed cycle
	// is replaced by a fresh one on the next progress update.
	KindChallenge DefinitionKind = "challenge"

	// KindQuest is a multi-step definition: each step carries its own trigger
	// and target, and the quest completes when every step is complete.
	KindQuest DefinitionKind = "quest"
)

// IsValid returns true if the definition kind is a valid type.
func (k DefinitionKind) IsValid() bool {
	switch k {
	case KindAchievement, KindChallenge, KindQuest:
		return true
	default:
		return false
	}
}

// DefinitionStatus controls whether a definition participates in event matching.
type DefinitionStatus string

const (
	// DefinitionStatusActive means the definition is matched against incoming events.
	DefinitionStatusActive DefinitionStatus = "active"

	// DefinitionStatusInactive means the definition is ignored by the engine.
	DefinitionStatusInactive DefinitionStatus = "inactive"
)

// IsValid returns true if the status is a valid definition status.
func (s DefinitionStatus) IsValid() bool {
	return s == DefinitionStatusActive || s == DefinitionStatusInactive
}

// Vertical scopes a definition to a product area. Only meaningful for
// game-dependent trigger types; non-game triggers ignore it.
type Vertical string

const (
	VerticalCasino     Vertical = "casino"
	VerticalSportsbook Vertical = "sportsbook"
	VerticalLiveCasino Vertical = "live_casino"

	// VerticalCross matches events from any vertical. Cross-vertical
	// definitions carry both casino and sports filter branches.
	VerticalCross Vertical = "cross_vertical"
)

// IsValid returns true if the vertical is a valid scope.
func (v Vertical) IsValid() bool {
	switch v {
	case VerticalCasino, VerticalSportsbook, VerticalLiveCasino, VerticalCross:
		return true
	default:
		return false
	}
}

// Frequency defines the cycle length of a challenge.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid returns true if the frequency is a valid cycle length.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// TriggerType identifies the behavioral metric a definition tracks.
type TriggerType string

const (
	TriggerLoginStreak            TriggerType = "login_streak"
	TriggerGameTurnover           TriggerType = "game_turnover"
	TriggerGameTransaction        TriggerType = "game_transaction"
	TriggerDeposit                TriggerType = "deposit"
	TriggerUserVerification       TriggerType = "user_verification"
	TriggerWinningBetsCount       TriggerType = "winning_bets_count"
	TriggerTotalWinAmount         TriggerType = "total_win_amount"
	TriggerMaxSingleWin           TriggerType = "max_single_win"
	TriggerConsecutiveWins        TriggerType = "consecutive_wins"
	TriggerSpecificGameEngagement TriggerType = "specific_game_engagement"
	TriggerMarketSpecificBets     TriggerType = "market_specific_bets"
	TriggerTotalDepositAmount     TriggerType = "total_deposit_amount"
	TriggerWithdrawal             TriggerType = "withdrawal"
	TriggerReferralCount          TriggerType = "referral_count"
	TriggerAccountLongevity       TriggerType = "account_longevity"
	TriggerProfileCompletion      TriggerType = "profile_completion"
	TriggerNetResult              TriggerType = "net_result"
)

// IsValid returns true if the trigger type is a known metric kind.
func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerLoginStreak, TriggerGameTurnover, TriggerGameTransaction,
		TriggerDeposit, TriggerUserVerification, TriggerWinningBetsCount,
		TriggerTotalWinAmount, TriggerMaxSingleWin, TriggerConsecutiveWins,
		TriggerSpecificGameEngagement, TriggerMarketSpecificBets,
		TriggerTotalDepositAmount, TriggerWithdrawal, TriggerReferralCount,
		TriggerAccountLongevity, TriggerProfileCompletion, TriggerNetResult:
		return true
	default:
		return false
	}
}

// IsGameDependent returns true for trigger types whose events originate from
// game play. Only these evaluate vertical scope and filter predicates.
func (t TriggerType) IsGameDependent() bool {
	switch t {
	case TriggerGameTurnover, TriggerGameTransaction, TriggerWinningBetsCount,
		TriggerTotalWinAmount, TriggerMaxSingleWin, TriggerConsecutiveWins,
		TriggerSpecificGameEngagement, TriggerMarketSpecificBets, TriggerNetResult:
		return true
	default:
		return false
	}
}

// Trigger is the discriminated metric record a definition tracks: one type
// plus type-specific parameters. Fields not used by the type are zero.
type Trigger struct {
	Type TriggerType `json:"type"`

	// Days is the target day count for login_streak and account_longevity.
	Days int `json:"days,omitempty"`

	// Count is the target occurrence count for count-based types
	// (deposit, winning_bets_count, consecutive_wins,
	// specific_game_engagement, referral_count, withdrawal count).
	Count int `json:"count,omitempty"`

	// Quantity is the target quantity for game_turnover (monetary),
	// game_transaction and market_specific_bets (occurrences).
	Quantity float64 `json:"quantity,omitempty"`

	// MinimumAmount is the per-event floor for game_turnover and
	// game_transaction, and the completion threshold for max_single_win.
	MinimumAmount float64 `json:"minimum_amount,omitempty"`

	// Amount is the cumulative monetary target for total_win_amount,
	// total_deposit_amount and the withdrawal amount target.
	Amount float64 `json:"amount,omitempty"`

	// VerificationType restricts user_verification to a specific
	// verification kind. Empty matches any verification.
	VerificationType string `json:"verification_type,omitempty"`

	// GameID restricts specific_game_engagement to one game or event.
	// Empty matches any game passing the definition filters.
	GameID string `json:"game_id,omitempty"`

	// MarketType restricts market_specific_bets to one market type.
	// Empty matches any market.
	MarketType string `json:"market_type,omitempty"`

	// NetWinTarget is the positive net-result completion threshold.
	NetWinTarget float64 `json:"net_win_target,omitempty"`

	// NetLossTarget is the net-loss completion threshold, expressed as a
	// positive magnitude (a running value of -NetLossTarget completes).
	NetLossTarget float64 `json:"net_loss_target,omitempty"`
}

// CasinoFilters is the casino-branch predicate group. Every configured
// allow-list must contain the corresponding event field; empty lists match all.
type CasinoFilters struct {
	Providers      []string `json:"providers,omitempty"`
	GameCategories []string `json:"game_categories,omitempty"`
	GameIDs        []string `json:"game_ids,omitempty"`
}

// SportsFilters is the sportsbook-branch predicate group.
type SportsFilters struct {
	SportTypes  []string `json:"sport_types,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	Leagues     []string `json:"leagues,omitempty"`
	EventIDs    []string `json:"event_ids,omitempty"`
	MarketTypes []string `json:"market_types,omitempty"`
}

// FilterSet holds the filter predicates of a definition, keyed by vertical.
// Casino and live_casino definitions populate Casino, sportsbook definitions
// populate Sports, and cross-vertical definitions may populate both branches.
// An event only has to satisfy the branch relevant to its own shape.
type FilterSet struct {
	Casino *CasinoFilters `json:"casino,omitempty"`
	Sports *SportsFilters `json:"sports,omitempty"`
}

// IsEmpty returns true when no predicate branch is configured.
func (f *FilterSet) IsEmpty() bool {
	return f == nil || (f.Casino == nil && f.Sports == nil)
}

// RewardKind defines which reward components a definition grants on claim.
type RewardKind string

const (
	// RewardPoints credits the player's points wallet.
	RewardPoints RewardKind = "points"

	// RewardBonus mints a bonus instance from a bonus template.
	RewardBonus RewardKind = "bonus"

	// RewardBoth grants points and a bonus instance together.
	RewardBoth RewardKind = "both"
)

// IsValid returns true if the reward kind is a valid type.
func (k RewardKind) IsValid() bool {
	switch k {
	case RewardPoints, RewardBonus, RewardBoth:
		return true
	default:
		return false
	}
}

// Reward defines what the player receives upon claiming a completed definition.
type Reward struct {
	Kind            RewardKind `json:"kind"`
	Points          int        `json:"points,omitempty"`
	BonusTemplateID string     `json:"bonus_template_id,omitempty"`
}

// GrantsPoints returns true if claiming this reward credits the wallet.
func (r Reward) GrantsPoints() bool {
	return r.Kind == RewardPoints || r.Kind == RewardBoth
}

// GrantsBonus returns true if claiming this reward mints a bonus instance.
func (r Reward) GrantsBonus() bool {
	return r.Kind == RewardBonus || r.Kind == RewardBoth
}

// Step is a single objective inside a quest. Each step is matched against
// events independently of the other steps.
type Step struct {
	ID      string  `json:"id"`
	Title   string  `json:"title,omitempty"`
	Order   int     `json:"order"`
	Trigger Trigger `json:"trigger"`
}

// Definition is a catalog entry describing a trigger, scope and reward.
// Challenge-only and quest-only fields are used according to Kind.
type Definition struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Kind        DefinitionKind   `json:"kind"`
	Status      DefinitionStatus `json:"status"`
	Priority    int              `json:"priority,omitempty"`
	Trigger     Trigger          `json:"trigger"`
	Vertical    Vertical         `json:"vertical,omitempty"`
	Filters     *FilterSet       `json:"filters,omitempty"`
	Reward      Reward           `json:"reward"`

	// Challenge-only fields.
	Frequency Frequency  `json:"frequency,omitempty"`
	StartDate time.Time  `json:"start_date,omitzero"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	AutoReset bool       `json:"auto_reset,omitempty"`

	// Quest-only: ordered list of steps.
	Steps []*Step `json:"steps,omitempty"`
}

// IsActive returns true if the definition participates in event matching.
func (d *Definition) IsActive() bool {
	return d.Status == DefinitionStatusActive
}

// StepByID returns the step with the given ID, or nil if absent.
func (d *Definition) StepByID(stepID string) *Step {
	for _, s := range d.Steps {
		if s.ID == stepID {
			return s
		}
	}
	return nil
}
