package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"progression-engine/pkg/domain"
)

func activeDef(id string, trigger domain.Trigger) *domain.Definition {
	return &domain.Definition{
		ID:      id,
		Title:   id,
		Kind:    domain.KindAchievement,
		Status:  domain.DefinitionStatusActive,
		Trigger: trigger,
	}
}

func TestMatches_TypeAndStatus(t *testing.T) {
	def := activeDef("d1", domain.Trigger{Type: domain.TriggerDeposit, Count: 3})

	assert.True(t, Matches(def, &domain.Event{Type: domain.TriggerDeposit}))
	assert.False(t, Matches(def, &domain.Event{Type: domain.TriggerLoginStreak}))

	def.Status = domain.DefinitionStatusInactive
	assert.False(t, Matches(def, &domain.Event{Type: domain.TriggerDeposit}))
}

func TestMatches_VerticalIsolation(t *testing.T) {
	def := activeDef("casino-turnover", domain.Trigger{Type: domain.TriggerGameTurnover, Quantity: 500})
	def.Vertical = domain.VerticalCasino

	assert.True(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTurnover,
		Vertical: domain.VerticalCasino,
		Amount:   100,
	}))

	// A sportsbook event never advances a casino-scoped definition.
	assert.False(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTurnover,
		Vertical: domain.VerticalSportsbook,
		Amount:   100,
	}))

	// Events without a vertical skip the check.
	assert.True(t, Matches(def, &domain.Event{
		Type:   domain.TriggerGameTurnover,
		Amount: 100,
	}))
}

func TestMatches_CrossVertical(t *testing.T) {
	def := activeDef("any-vertical", domain.Trigger{Type: domain.TriggerWinningBetsCount, Count: 5})
	def.Vertical = domain.VerticalCross

	for _, vertical := range []domain.Vertical{domain.VerticalCasino, domain.VerticalSportsbook, domain.VerticalLiveCasino} {
		assert.True(t, Matches(def, &domain.Event{
			Type:     domain.TriggerWinningBetsCount,
			Vertical: vertical,
			IsWin:    true,
		}), "cross_vertical should match %s", vertical)
	}
}

func TestMatches_NonGameTriggersIgnoreVertical(t *testing.T) {
	def := activeDef("deposit-count", domain.Trigger{Type: domain.TriggerDeposit, Count: 3})
	def.Vertical = domain.VerticalCasino

	// deposit is not game-dependent; the vertical scope is ignored.
	assert.True(t, Matches(def, &domain.Event{
		Type:     domain.TriggerDeposit,
		Vertical: domain.VerticalSportsbook,
	}))
}

func TestMatches_CasinoFilterGating(t *testing.T) {
	def := activeDef("table-turnover", domain.Trigger{Type: domain.TriggerGameTurnover, Quantity: 500})
	def.Vertical = domain.VerticalCasino
	def.Filters = &domain.FilterSet{
		Casino: &domain.CasinoFilters{GameCategories: []string{"TABLE"}},
	}

	assert.False(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTurnover,
		Vertical: domain.VerticalCasino,
		Category: "SLOTS",
	}))
	assert.True(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTurnover,
		Vertical: domain.VerticalCasino,
		Category: "TABLE",
	}))
}

func TestMatches_CasinoProviderAndGameFilters(t *testing.T) {
	def := activeDef("provider-bound", domain.Trigger{Type: domain.TriggerGameTransaction, Quantity: 10})
	def.Vertical = domain.VerticalCasino
	def.Filters = &domain.FilterSet{
		Casino: &domain.CasinoFilters{
			Providers: []string{"evolution", "netent"},
			GameIDs:   []string{"g-1"},
		},
	}

	assert.True(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTransaction,
		Vertical: domain.VerticalCasino,
		Provider: "netent",
		GameID:   "g-1",
	}))
	assert.False(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTransaction,
		Vertical: domain.VerticalCasino,
		Provider: "playtech",
		GameID:   "g-1",
	}))
	assert.False(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTransaction,
		Vertical: domain.VerticalCasino,
		Provider: "netent",
		GameID:   "g-2",
	}))
}

func TestMatches_SportsFilters(t *testing.T) {
	def := activeDef("football-bets", domain.Trigger{Type: domain.TriggerMarketSpecificBets, Quantity: 5})
	def.Vertical = domain.VerticalSportsbook
	def.Filters = &domain.FilterSet{
		Sports: &domain.SportsFilters{
			SportTypes: []string{"football"},
			Leagues:    []string{"premier-league"},
		},
	}

	assert.True(t, Matches(def, &domain.Event{
		Type:      domain.TriggerMarketSpecificBets,
		Vertical:  domain.VerticalSportsbook,
		SportType: "football",
		League:    "premier-league",
	}))
	assert.False(t, Matches(def, &domain.Event{
		Type:      domain.TriggerMarketSpecificBets,
		Vertical:  domain.VerticalSportsbook,
		SportType: "tennis",
		League:    "premier-league",
	}))
}

func TestMatches_CrossVerticalBranchSelection(t *testing.T) {
	def := activeDef("cross-filtered", domain.Trigger{Type: domain.TriggerGameTurnover, Quantity: 100})
	def.Vertical = domain.VerticalCross
	def.Filters = &domain.FilterSet{
		Casino: &domain.CasinoFilters{GameCategories: []string{"SLOTS"}},
		Sports: &domain.SportsFilters{SportTypes: []string{"football"}},
	}

	// A casino-shaped event is checked against the casino branch only.
	assert.True(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTurnover,
		Vertical: domain.VerticalCasino,
		Category: "SLOTS",
	}))
	assert.False(t, Matches(def, &domain.Event{
		Type:     domain.TriggerGameTurnover,
		Vertical: domain.VerticalCasino,
		Category: "TABLE",
	}))

	// A sports-shaped event is checked against the sports branch only.
	assert.True(t, Matches(def, &domain.Event{
		Type:      domain.TriggerGameTurnover,
		Vertical:  domain.VerticalSportsbook,
		SportType: "football",
	}))
	assert.False(t, Matches(def, &domain.Event{
		Type:      domain.TriggerGameTurnover,
		Vertical:  domain.VerticalSportsbook,
		SportType: "tennis",
	}))
}

func TestMatches_QuestStepTypes(t *testing.T) {
	quest := &domain.Definition{
		ID:     "q1",
		Kind:   domain.KindQuest,
		Status: domain.DefinitionStatusActive,
		Steps: []*domain.Step{
			{ID: "s1", Order: 1, Trigger: domain.Trigger{Type: domain.TriggerLoginStreak, Days: 3}},
			{ID: "s2", Order: 2, Trigger: domain.Trigger{Type: domain.TriggerDeposit, Count: 1}},
		},
	}

	assert.True(t, Matches(quest, &domain.Event{Type: domain.TriggerLoginStreak}))
	assert.True(t, Matches(quest, &domain.Event{Type: domain.TriggerDeposit}))
	assert.False(t, Matches(quest, &domain.Event{Type: domain.TriggerWithdrawal}))
}
