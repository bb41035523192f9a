package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"progression-engine/pkg/common"
	"progression-engine/pkg/domain"
)

// Loader loads and validates the reward catalog from a JSON file.
// It performs file reading, JSON parsing, legacy field migration, and
// comprehensive validation.
type Loader struct {
	configPath string
	validator  *Validator
	logger     *slog.Logger
}

// NewLoader creates a new catalog Loader instance.
func NewLoader(configPath string, logger *slog.Logger) *Loader {
	return &Loader{
		configPath: configPath,
		validator:  NewValidator(),
		logger:     logger,
	}
}

// definitionJSON wraps a Definition with the legacy flat reward_points field.
// Old catalogs carried points as a bare integer next to the definition; the
// loader folds it into the structured reward and the rest of the engine only
// ever sees Definition.Reward.
type definitionJSON struct {
	*domain.Definition
	LegacyRewardPoints int `json:"reward_points,omitempty"`
}

type configJSON struct {
	Definitions    []*definitionJSON       `json:"definitions"`
	BonusTemplates []*domain.BonusTemplate `json:"bonus_templates,omitempty"`
}

// Load reads the catalog file and returns a validated Config.
// This is a fail-fast operation: an invalid catalog prevents startup.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	config := &Config{
		Definitions:    make([]*domain.Definition, 0, len(raw.Definitions)),
		BonusTemplates: raw.BonusTemplates,
	}
	for _, dj := range raw.Definitions {
		if dj == nil || dj.Definition == nil {
			continue
		}
		def := dj.Definition

		// Migrate the legacy flat points field into the structured reward.
		if def.Reward.Kind == "" && dj.LegacyRewardPoints > 0 {
			def.Reward = domain.Reward{Kind: domain.RewardPoints, Points: dj.LegacyRewardPoints}
		}

		// Definitions without an explicit status default to active.
		if def.Status == "" {
			def.Status = domain.DefinitionStatusActive
		}

		// Challenge cycles run on UTC date boundaries regardless of the
		// time-of-day the catalog author wrote into the start date.
		if def.Kind == domain.KindChallenge && !def.StartDate.IsZero() {
			def.StartDate = common.TruncateToDateUTC(def.StartDate)
		}

		config.Definitions = append(config.Definitions, def)
	}

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	l.logger.Info("Catalog loaded successfully",
		"definitions", len(config.Definitions),
		"bonus_templates", len(config.BonusTemplates),
		"config_path", l.configPath,
	)

	return config, nil
}
