package config

import (
	"errors"
	"fmt"

	"progression-engine/pkg/domain"
)

// Validator validates catalog configuration files.
// It ensures all business rules are met before the application starts.
//
// Note the distinction from runtime handling: a definition whose trigger has
// no usable target is a hard error here, while the engine silently skips such
// definitions when they arrive through the admin CRUD surface.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
// - All definition IDs are unique
// - Kind, status, trigger type, vertical and frequency values are known
// - Challenge and quest specific fields are present for those kinds
// - Rewards reference configured points or an existing bonus template
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(config *Config) error {
	if len(config.Definitions) == 0 {
		return errors.New("catalog must have at least one definition")
	}

	templateIDs := make(map[string]bool)
	for _, tpl := range config.BonusTemplates {
		if tpl.ID == "" {
			return errors.New("bonus template ID cannot be empty")
		}
		if templateIDs[tpl.ID] {
			return fmt.Errorf("duplicate bonus template ID: %s", tpl.ID)
		}
		if tpl.Amount <= 0 {
			return fmt.Errorf("bonus template '%s' amount must be positive", tpl.ID)
		}
		templateIDs[tpl.ID] = true
	}

	definitionIDs := make(map[string]bool)
	for _, def := range config.Definitions {
		if err := v.validateDefinition(def, templateIDs); err != nil {
			return fmt.Errorf("invalid definition '%s': %w", def.ID, err)
		}
		if definitionIDs[def.ID] {
			return fmt.Errorf("duplicate definition ID: %s", def.ID)
		}
		definitionIDs[def.ID] = true
	}

	return nil
}

// validateDefinition validates a single definition.
func (v *Validator) validateDefinition(def *domain.Definition, templateIDs map[string]bool) error {
	if def.ID == "" {
		return errors.New("definition ID cannot be empty")
	}
	if def.Title == "" {
		return errors.New("definition title cannot be empty")
	}
	if !def.Kind.IsValid() {
		return fmt.Errorf("invalid kind '%s' (must be 'achievement', 'challenge', or 'quest')", def.Kind)
	}
	if !def.Status.IsValid() {
		return fmt.Errorf("invalid status '%s' (must be 'active' or 'inactive')", def.Status)
	}
	if def.Vertical != "" && !def.Vertical.IsValid() {
		return fmt.Errorf("invalid vertical '%s'", def.Vertical)
	}

	switch def.Kind {
	case domain.KindQuest:
		if err := v.validateSteps(def); err != nil {
			return err
		}
	case domain.KindChallenge:
		if !def.Frequency.IsValid() {
			return fmt.Errorf("invalid frequency '%s' (must be 'daily', 'weekly', or 'monthly')", def.Frequency)
		}
		if def.StartDate.IsZero() {
			return errors.New("challenge start_date cannot be empty")
		}
		if def.EndDate != nil && def.EndDate.Before(def.StartDate) {
			return errors.New("challenge end_date cannot be before start_date")
		}
		if err := v.validateTrigger(def.Trigger); err != nil {
			return err
		}
	default:
		if err := v.validateTrigger(def.Trigger); err != nil {
			return err
		}
	}

	return v.validateReward(def.Reward, templateIDs)
}

// validateSteps validates the step list of a quest definition.
func (v *Validator) validateSteps(def *domain.Definition) error {
	if len(def.Steps) == 0 {
		return errors.New("quest must have at least one step")
	}

	stepIDs := make(map[string]bool)
	for _, step := range def.Steps {
		if step.ID == "" {
			return errors.New("step ID cannot be empty")
		}
		if stepIDs[step.ID] {
			return fmt.Errorf("duplicate step ID: %s", step.ID)
		}
		stepIDs[step.ID] = true

		if err := v.validateTrigger(step.Trigger); err != nil {
			return fmt.Errorf("invalid step '%s': %w", step.ID, err)
		}
	}
	return nil
}

// validateTrigger validates a trigger's type and target parameters.
func (v *Validator) validateTrigger(trigger domain.Trigger) error {
	if trigger.Type == "" {
		return errors.New("trigger type cannot be empty")
	}
	if !trigger.Type.IsValid() {
		return fmt.Errorf("unknown trigger type '%s'", trigger.Type)
	}

	switch trigger.Type {
	case domain.TriggerLoginStreak, domain.TriggerAccountLongevity:
		if trigger.Days <= 0 {
			return fmt.Errorf("trigger '%s' requires a positive days target", trigger.Type)
		}
	case domain.TriggerGameTurnover, domain.TriggerGameTransaction, domain.TriggerMarketSpecificBets:
		if trigger.Quantity <= 0 {
			return fmt.Errorf("trigger '%s' requires a positive quantity target", trigger.Type)
		}
	case domain.TriggerDeposit, domain.TriggerWinningBetsCount, domain.TriggerConsecutiveWins,
		domain.TriggerSpecificGameEngagement, domain.TriggerReferralCount:
		if trigger.Count <= 0 {
			return fmt.Errorf("trigger '%s' requires a positive count target", trigger.Type)
		}
	case domain.TriggerTotalWinAmount, domain.TriggerTotalDepositAmount:
		if trigger.Amount <= 0 {
			return fmt.Errorf("trigger '%s' requires a positive amount target", trigger.Type)
		}
	case domain.TriggerMaxSingleWin:
		if trigger.MinimumAmount <= 0 {
			return fmt.Errorf("trigger '%s' requires a positive minimum_amount threshold", trigger.Type)
		}
	case domain.TriggerWithdrawal:
		if trigger.Count <= 0 && trigger.Amount <= 0 {
			return errors.New("trigger 'withdrawal' requires a count or amount target")
		}
	case domain.TriggerNetResult:
		if trigger.NetWinTarget <= 0 && trigger.NetLossTarget <= 0 {
			return errors.New("trigger 'net_result' requires a net_win_target or net_loss_target")
		}
	case domain.TriggerUserVerification, domain.TriggerProfileCompletion:
		// Fixed target of 1; nothing to validate.
	}

	return nil
}

// validateReward validates a reward and its template reference.
func (v *Validator) validateReward(reward domain.Reward, templateIDs map[string]bool) error {
	if !reward.Kind.IsValid() {
		return fmt.Errorf("unsupported reward kind '%s' (only 'points', 'bonus' or 'both' allowed)", reward.Kind)
	}
	if reward.GrantsPoints() && reward.Points <= 0 {
		return errors.New("reward points must be positive")
	}
	if reward.GrantsBonus() {
		if reward.BonusTemplateID == "" {
			return errors.New("bonus_template_id cannot be empty for bonus rewards")
		}
		if !templateIDs[reward.BonusTemplateID] {
			return fmt.Errorf("reward references unknown bonus template '%s'", reward.BonusTemplateID)
		}
	}
	return nil
}
