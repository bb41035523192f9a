package catalog

import "progression-engine/pkg/domain"

// Catalog provides lookups over reward definitions and bonus templates, plus
// plain CRUD for the admin surface. It holds no business rules; the engine
// decides what to do with the definitions it returns.
type Catalog interface {
	// GetDefinition retrieves a definition by its unique ID.
	// Returns nil if the definition does not exist.
	GetDefinition(definitionID string) *domain.Definition

	// ActiveDefinitions retrieves all active definitions of one kind.
	// Returns an empty slice if none are active.
	ActiveDefinitions(kind domain.DefinitionKind) []*domain.Definition

	// ActiveByTrigger retrieves active definitions of one kind whose trigger
	// type matches. Quests are indexed by each step's trigger type, so a
	// quest appears under every trigger type one of its steps tracks.
	ActiveByTrigger(kind domain.DefinitionKind, trigger domain.TriggerType) []*domain.Definition

	// AllDefinitions retrieves every definition regardless of status.
	AllDefinitions() []*domain.Definition

	// GetBonusTemplate retrieves a bonus template by ID.
	// Returns nil if the template does not exist.
	GetBonusTemplate(templateID string) *domain.BonusTemplate

	// UpsertDefinition creates or replaces a definition and rebuilds indexes.
	UpsertDefinition(def *domain.Definition)

	// DeleteDefinition removes a definition. Removing an absent ID is a no-op.
	DeleteDefinition(definitionID string)

	// UpsertBonusTemplate creates or replaces a bonus template.
	UpsertBonusTemplate(tpl *domain.BonusTemplate)

	// DeleteBonusTemplate removes a bonus template.
	DeleteBonusTemplate(templateID string)

	// Reload reloads the catalog from its backing config file.
	// Returns error if the file cannot be read or is invalid.
	Reload() error
}
