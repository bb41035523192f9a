package catalog

import (
	"log/slog"
	"sort"
	"sync"

	"progression-engine/pkg/config"
	"progression-engine/pkg/domain"
)

// triggerKey indexes definitions by (kind, trigger type).
type triggerKey struct {
	kind    domain.DefinitionKind
	trigger domain.TriggerType
}

// InMemoryCatalog provides O(1) in-memory lookups for the reward catalog.
// Indexes are built from the validated startup config and rebuilt on every
// admin mutation. All methods are safe for concurrent use.
type InMemoryCatalog struct {
	definitionsByID map[string]*domain.Definition
	byTrigger       map[triggerKey][]*domain.Definition
	templatesByID   map[string]*domain.BonusTemplate
	configPath      string
	mu              sync.RWMutex
	logger          *slog.Logger
}

// NewInMemoryCatalog creates a new catalog from the provided configuration.
// The catalog is immediately built and ready for lookups.
func NewInMemoryCatalog(cfg *config.Config, configPath string, logger *slog.Logger) *InMemoryCatalog {
	c := &InMemoryCatalog{
		configPath: configPath,
		logger:     logger,
	}
	c.build(cfg)
	return c
}

// build constructs all catalog indexes from the configuration, replacing any
// existing data.
func (c *InMemoryCatalog) build(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.definitionsByID = make(map[string]*domain.Definition, len(cfg.Definitions))
	c.templatesByID = make(map[string]*domain.BonusTemplate, len(cfg.BonusTemplates))

	for _, def := range cfg.Definitions {
		c.definitionsByID[def.ID] = def
	}
	for _, tpl := range cfg.BonusTemplates {
		c.templatesByID[tpl.ID] = tpl
	}
	c.rebuildTriggerIndex()

	c.logger.Info("Catalog indexes built",
		"definitions", len(c.definitionsByID),
		"bonus_templates", len(c.templatesByID),
		"trigger_keys", len(c.byTrigger),
	)
}

// rebuildTriggerIndex rebuilds the (kind, trigger) index. Caller holds c.mu.
func (c *InMemoryCatalog) rebuildTriggerIndex() {
	c.byTrigger = make(map[triggerKey][]*domain.Definition)
	for _, def := range c.definitionsByID {
		if !def.IsActive() {
			continue
		}
		if def.Kind == domain.KindQuest {
			// Index a quest once per distinct step trigger type.
			seen := make(map[domain.TriggerType]bool, len(def.Steps))
			for _, step := range def.Steps {
				if seen[step.Trigger.Type] {
					continue
				}
				seen[step.Trigger.Type] = true
				key := triggerKey{kind: def.Kind, trigger: step.Trigger.Type}
				c.byTrigger[key] = append(c.byTrigger[key], def)
			}
			continue
		}
		key := triggerKey{kind: def.Kind, trigger: def.Trigger.Type}
		c.byTrigger[key] = append(c.byTrigger[key], def)
	}

	// Stable ordering: priority descending, then ID for determinism.
	for _, defs := range c.byTrigger {
		sort.Slice(defs, func(i, j int) bool {
			if defs[i].Priority != defs[j].Priority {
				return defs[i].Priority > defs[j].Priority
			}
			return defs[i].ID < defs[j].ID
		})
	}
}

// GetDefinition retrieves a definition by its unique ID.
// Returns nil if the definition does not exist.
func (c *InMemoryCatalog) GetDefinition(definitionID string) *domain.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.definitionsByID[definitionID]
}

// ActiveDefinitions retrieves all active definitions of one kind.
func (c *InMemoryCatalog) ActiveDefinitions(kind domain.DefinitionKind) []*domain.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := make([]*domain.Definition, 0)
	for _, def := range c.definitionsByID {
		if def.Kind == kind && def.IsActive() {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Priority != defs[j].Priority {
			return defs[i].Priority > defs[j].Priority
		}
		return defs[i].ID < defs[j].ID
	})
	return defs
}

// ActiveByTrigger retrieves active definitions of one kind whose trigger type
// matches the given type.
func (c *InMemoryCatalog) ActiveByTrigger(kind domain.DefinitionKind, trigger domain.TriggerType) []*domain.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := c.byTrigger[triggerKey{kind: kind, trigger: trigger}]
	if defs == nil {
		return []*domain.Definition{}
	}
	return defs
}

// AllDefinitions retrieves every definition regardless of status.
func (c *InMemoryCatalog) AllDefinitions() []*domain.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := make([]*domain.Definition, 0, len(c.definitionsByID))
	for _, def := range c.definitionsByID {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// GetBonusTemplate retrieves a bonus template by ID.
// Returns nil if the template does not exist.
func (c *InMemoryCatalog) GetBonusTemplate(templateID string) *domain.BonusTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.templatesByID[templateID]
}

// UpsertDefinition creates or replaces a definition and rebuilds indexes.
func (c *InMemoryCatalog) UpsertDefinition(def *domain.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.definitionsByID[def.ID] = def
	c.rebuildTriggerIndex()
	c.logger.Info("Definition upserted", "definition_id", def.ID, "kind", def.Kind)
}

// DeleteDefinition removes a definition. Removing an absent ID is a no-op.
func (c *InMemoryCatalog) DeleteDefinition(definitionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.definitionsByID[definitionID]; !ok {
		return
	}
	delete(c.definitionsByID, definitionID)
	c.rebuildTriggerIndex()
	c.logger.Info("Definition deleted", "definition_id", definitionID)
}

// UpsertBonusTemplate creates or replaces a bonus template.
func (c *InMemoryCatalog) UpsertBonusTemplate(tpl *domain.BonusTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.templatesByID[tpl.ID] = tpl
	c.logger.Info("Bonus template upserted", "template_id", tpl.ID)
}

// DeleteBonusTemplate removes a bonus template.
func (c *InMemoryCatalog) DeleteBonusTemplate(templateID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.templatesByID, templateID)
	c.logger.Info("Bonus template deleted", "template_id", templateID)
}

// Reload reloads the catalog from the config file.
// Admin mutations made since startup are discarded in favor of the file.
func (c *InMemoryCatalog) Reload() error {
	loader := config.NewLoader(c.configPath, c.logger)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	c.build(cfg)
	c.logger.Info("Catalog reloaded")
	return nil
}
