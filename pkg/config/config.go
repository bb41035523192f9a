package config

import "progression-engine/pkg/domain"

// Config represents the top-level catalog configuration loaded from
// catalog.json. This structure is parsed from JSON and validated during
// application startup.
type Config struct {
	Definitions    []*domain.Definition    `json:"definitions"`
	BonusTemplates []*domain.BonusTemplate `json:"bonus_templates,omitempty"`
}
