package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progression-engine/pkg/config"
	"progression-engine/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	return &config.Config{
		Definitions: []*domain.Definition{
			{
				ID:      "ach-login",
				Title:   "Login Streak",
				Kind:    domain.KindAchievement,
				Status:  domain.DefinitionStatusActive,
				Trigger: domain.Trigger{Type: domain.TriggerLoginStreak, Days: 3},
				Reward:  domain.Reward{Kind: domain.RewardPoints, Points: 100},
			},
			{
				ID:       "ach-turnover",
				Title:    "Turnover",
				Kind:     domain.KindAchievement,
				Status:   domain.DefinitionStatusActive,
				Priority: 5,
				Trigger:  domain.Trigger{Type: domain.TriggerGameTurnover, Quantity: 500},
				Reward:   domain.Reward{Kind: domain.RewardPoints, Points: 100},
			},
			{
				ID:      "ach-inactive",
				Title:   "Disabled",
				Kind:    domain.KindAchievement,
				Status:  domain.DefinitionStatusInactive,
				Trigger: domain.Trigger{Type: domain.TriggerLoginStreak, Days: 7},
				Reward:  domain.Reward{Kind: domain.RewardPoints, Points: 100},
			},
			{
				ID:        "chal-daily",
				Title:     "Daily Deposit",
				Kind:      domain.KindChallenge,
				Status:    domain.DefinitionStatusActive,
				Trigger:   domain.Trigger{Type: domain.TriggerDeposit, Count: 1},
				Reward:    domain.Reward{Kind: domain.RewardPoints, Points: 10},
				Frequency: domain.FrequencyDaily,
				StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				AutoReset: true,
			},
			{
				ID:     "quest-onboarding",
				Title:  "Onboarding",
				Kind:   domain.KindQuest,
				Status: domain.DefinitionStatusActive,
				Reward: domain.Reward{Kind: domain.RewardPoints, Points: 500},
				Steps: []*domain.Step{
					{ID: "q-s1", Order: 1, Trigger: domain.Trigger{Type: domain.TriggerLoginStreak, Days: 2}},
					{ID: "q-s2", Order: 2, Trigger: domain.Trigger{Type: domain.TriggerDeposit, Count: 1}},
				},
			},
		},
		BonusTemplates: []*domain.BonusTemplate{
			{ID: "tpl-1", Name: "Free Spins", Amount: 10},
		},
	}
}

func TestInMemoryCatalog_GetDefinition(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	def := c.GetDefinition("ach-login")
	require.NotNil(t, def)
	assert.Equal(t, "Login Streak", def.Title)

	assert.Nil(t, c.GetDefinition("missing"))
}

func TestInMemoryCatalog_ActiveDefinitions(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	achievements := c.ActiveDefinitions(domain.KindAchievement)
	require.Len(t, achievements, 2, "inactive definitions must be excluded")
	// Priority 5 sorts before priority 0.
	assert.Equal(t, "ach-turnover", achievements[0].ID)

	assert.Len(t, c.ActiveDefinitions(domain.KindChallenge), 1)
	assert.Len(t, c.ActiveDefinitions(domain.KindQuest), 1)
}

func TestInMemoryCatalog_ActiveByTrigger(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	defs := c.ActiveByTrigger(domain.KindAchievement, domain.TriggerLoginStreak)
	require.Len(t, defs, 1)
	assert.Equal(t, "ach-login", defs[0].ID)

	// Quests are indexed under each step's trigger type.
	quests := c.ActiveByTrigger(domain.KindQuest, domain.TriggerDeposit)
	require.Len(t, quests, 1)
	assert.Equal(t, "quest-onboarding", quests[0].ID)

	assert.Empty(t, c.ActiveByTrigger(domain.KindAchievement, domain.TriggerNetResult))
}

func TestInMemoryCatalog_GetBonusTemplate(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	tpl := c.GetBonusTemplate("tpl-1")
	require.NotNil(t, tpl)
	assert.Equal(t, float64(10), tpl.Amount)

	assert.Nil(t, c.GetBonusTemplate("missing"))
}

func TestInMemoryCatalog_UpsertAndDeleteDefinition(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	c.UpsertDefinition(&domain.Definition{
		ID:      "ach-new",
		Title:   "Fresh",
		Kind:    domain.KindAchievement,
		Status:  domain.DefinitionStatusActive,
		Trigger: domain.Trigger{Type: domain.TriggerReferralCount, Count: 2},
		Reward:  domain.Reward{Kind: domain.RewardPoints, Points: 25},
	})

	require.NotNil(t, c.GetDefinition("ach-new"))
	assert.Len(t, c.ActiveByTrigger(domain.KindAchievement, domain.TriggerReferralCount), 1)

	// Deactivating via upsert drops it from the trigger index.
	def := *c.GetDefinition("ach-new")
	def.Status = domain.DefinitionStatusInactive
	c.UpsertDefinition(&def)
	assert.Empty(t, c.ActiveByTrigger(domain.KindAchievement, domain.TriggerReferralCount))

	c.DeleteDefinition("ach-new")
	assert.Nil(t, c.GetDefinition("ach-new"))

	// Deleting an absent ID is a no-op.
	c.DeleteDefinition("ach-new")
}

func TestInMemoryCatalog_UpsertAndDeleteBonusTemplate(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), "", testLogger())

	c.UpsertBonusTemplate(&domain.BonusTemplate{ID: "tpl-2", Name: "Reload", Amount: 50})
	require.NotNil(t, c.GetBonusTemplate("tpl-2"))

	c.DeleteBonusTemplate("tpl-2")
	assert.Nil(t, c.GetBonusTemplate("tpl-2"))
}

func TestInMemoryCatalog_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{
		"definitions": [
			{
				"id": "ach-from-file",
				"title": "From File",
				"kind": "achievement",
				"status": "active",
				"trigger": {"type": "deposit", "count": 1},
				"reward": {"kind": "points", "points": 10}
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c := NewInMemoryCatalog(testConfig(), path, testLogger())
	require.NoError(t, c.Reload())

	assert.Nil(t, c.GetDefinition("ach-login"), "reload replaces in-memory catalog")
	assert.NotNil(t, c.GetDefinition("ach-from-file"))
}

func TestInMemoryCatalog_Reload_InvalidFile(t *testing.T) {
	c := NewInMemoryCatalog(testConfig(), filepath.Join(t.TempDir(), "missing.json"), testLogger())
	require.Error(t, c.Reload())
	// Failed reload leaves the previous catalog intact.
	assert.NotNil(t, c.GetDefinition("ach-login"))
}
