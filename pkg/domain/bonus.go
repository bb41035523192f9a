package domain

import "time"

// DefaultBonusExpiryDays is the bonus instance lifetime applied when a
// template does not configure its own expiry.
const DefaultBonusExpiryDays = 7

// BonusTemplate is a reusable reward blueprint. Instances minted from a
// template copy its amount and wagering requirement at issuance time.
type BonusTemplate struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Amount             float64 `json:"amount"`
	WageringMultiplier float64 `json:"wagering_multiplier,omitempty"`
	ExpiryDays         int     `json:"expiry_days,omitempty"`
}

// BonusStatus represents the lifecycle state of a minted bonus instance.
// Transitions past active (used/expired) happen outside this engine.
type BonusStatus string

const (
	BonusActive  BonusStatus = "active"
	BonusUsed    BonusStatus = "used"
	BonusExpired BonusStatus = "expired"
)

// BonusInstance is a concrete, player-bound bonus minted from a template by
// the reward issuer. Immutable once created, except for status transitions.
type BonusInstance struct {
	ID                 string         `json:"id"`
	PlayerID           string         `json:"player_id"`
	TemplateID         string         `json:"template_id"`
	SourceDefinitionID string         `json:"source_definition_id"`
	SourceKind         DefinitionKind `json:"source_kind"`
	Amount             float64        `json:"amount"`
	WageringMultiplier float64        `json:"wagering_multiplier,omitempty"`
	Status             BonusStatus    `json:"status"`
	IssuedAt           time.Time      `json:"issued_at"`
	ExpiresAt          time.Time      `json:"expires_at"`
}

// NewBonusInstance mints an instance from a template for a player, tagged
// with the originating definition. The caller supplies the instance ID.
func NewBonusInstance(id, playerID string, tpl *BonusTemplate, sourceID string, sourceKind DefinitionKind, now time.Time) *BonusInstance {
	expiryDays := tpl.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = DefaultBonusExpiryDays
	}
	return &BonusInstance{
		ID:                 id,
		PlayerID:           playerID,
		TemplateID:         tpl.ID,
		SourceDefinitionID: sourceID,
		SourceKind:         sourceKind,
		Amount:             tpl.Amount,
		WageringMultiplier: tpl.WageringMultiplier,
		Status:             BonusActive,
		IssuedAt:           now,
		ExpiresAt:          now.AddDate(0, 0, expiryDays),
	}
}
