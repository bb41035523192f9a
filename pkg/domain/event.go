package domain

import "time"

// Event is a single behavioral event reported for a player. Only the fields
// relevant to the event's trigger type are populated; the rest stay zero.
type Event struct {
	Type     TriggerType `json:"type"`
	Vertical Vertical    `json:"vertical,omitempty"`

	// Monetary fields.
	Amount    float64 `json:"amount,omitempty"`
	IsWin     bool    `json:"is_win,omitempty"`
	WinAmount float64 `json:"win_amount,omitempty"`
	NetDelta  float64 `json:"net_delta,omitempty"`

	// Casino-shaped fields.
	Provider string `json:"provider,omitempty"`
	Category string `json:"category,omitempty"`
	GameID   string `json:"game_id,omitempty"`

	// Sports-shaped fields.
	SportType  string `json:"sport_type,omitempty"`
	Country    string `json:"country,omitempty"`
	League     string `json:"league,omitempty"`
	EventID    string `json:"event_id,omitempty"`
	MarketType string `json:"market_type,omitempty"`

	// Account-level fields.
	VerificationType string `json:"verification_type,omitempty"`
	IsWithdrawal     bool   `json:"is_withdrawal,omitempty"`
	Referrals        int    `json:"referrals,omitempty"`
	AccountAgeDays   int    `json:"account_age_days,omitempty"`
	ProfileCompleted bool   `json:"profile_completed,omitempty"`

	// OccurredAt is informational; the engine clock drives cycle logic.
	OccurredAt time.Time `json:"occurred_at,omitzero"`
}

// IsSportsShaped returns true when the event carries sportsbook fields.
// Cross-vertical definitions use this to pick the filter branch to evaluate.
func (e *Event) IsSportsShaped() bool {
	if e.Vertical == VerticalSportsbook {
		return true
	}
	if e.Vertical == VerticalCasino || e.Vertical == VerticalLiveCasino {
		return false
	}
	return e.SportType != "" || e.League != "" || e.EventID != "" || e.MarketType != ""
}
