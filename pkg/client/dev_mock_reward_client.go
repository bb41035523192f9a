package client

import (
	"context"
	"log"

	"progression-engine/pkg/domain"
)

// DevMockRewardClient is a simple mock implementation for local development.
// Unlike MockRewardClient (testify/mock), this doesn't require explicit setup
// and always succeeds with logged output.
//
// Use this for local development when REWARD_CLIENT_MODE=mock.
// For tests, use MockRewardClient instead.
type DevMockRewardClient struct{}

// CreditWallet logs the wallet credit and returns success.
func (d *DevMockRewardClient) CreditWallet(ctx context.Context, playerID string, points int) error {
	log.Printf("[DevMock] CreditWallet: playerID=%s, points=%d", playerID, points)
	return nil
}

// MintBonus logs the minted bonus and returns success.
func (d *DevMockRewardClient) MintBonus(ctx context.Context, instance *domain.BonusInstance) error {
	log.Printf("[DevMock] MintBonus: playerID=%s, templateID=%s, amount=%.2f, source=%s",
		instance.PlayerID, instance.TemplateID, instance.Amount, instance.SourceDefinitionID)
	return nil
}

// NewDevMockRewardClient creates a new development mock reward client.
func NewDevMockRewardClient() *DevMockRewardClient {
	return &DevMockRewardClient{}
}
