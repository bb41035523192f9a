package client

import (
	"context"

	"github.com/stretchr/testify/mock"

	"progression-engine/pkg/domain"
)

// MockRewardClient is a mock implementation of RewardClient for testing.
// It uses testify/mock to allow test assertions on method calls.
type MockRewardClient struct {
	mock.Mock
}

// CreditWallet mocks crediting a points wallet.
func (m *MockRewardClient) CreditWallet(ctx context.Context, playerID string, points int) error {
	args := m.Called(ctx, playerID, points)
	return args.Error(0)
}

// MintBonus mocks minting a bonus instance.
func (m *MockRewardClient) MintBonus(ctx context.Context, instance *domain.BonusInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

// NewMockRewardClient creates a new mock reward client.
func NewMockRewardClient() *MockRewardClient {
	return &MockRewardClient{}
}
