package errors

import "fmt"

// Error codes for the progression engine.
const (
	// Domain errors
	ErrCodeDefinitionNotFound = "DEFINITION_NOT_FOUND"
	ErrCodeProgressNotFound   = "PROGRESS_NOT_FOUND"
	ErrCodeAlreadyClaimed     = "ALREADY_CLAIMED"
	ErrCodeNotCompleted       = "NOT_COMPLETED"
	ErrCodeInvalidStatus      = "INVALID_STATUS"

	// Store errors
	ErrCodeStoreError        = "STORE_ERROR"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"

	// Config errors
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"

	// Reward issuance errors
	ErrCodeRewardGrantFailed     = "REWARD_GRANT_FAILED"
	ErrCodeBonusTemplateNotFound = "BONUS_TEMPLATE_NOT_FOUND"
	ErrCodeRewardNotConfigured   = "REWARD_NOT_CONFIGURED"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "INVALID_INPUT"
)

// EngineError represents an error in the progression engine.
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(code, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Domain-specific error constructors

// ErrDefinitionNotFound returns an error when a definition is not found.
func ErrDefinitionNotFound(definitionID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeDefinitionNotFound,
		Message: fmt.Sprintf("definition not found: %s", definitionID),
	}
}

// ErrProgressNotFound returns an error when no progress record exists for a
// (player, definition) pair.
func ErrProgressNotFound(playerID, definitionID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeProgressNotFound,
		Message: fmt.Sprintf("no progress for player %s on definition %s", playerID, definitionID),
	}
}

// ErrAlreadyClaimed returns an error when attempting to claim an already
// claimed record.
func ErrAlreadyClaimed(definitionID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeAlreadyClaimed,
		Message: fmt.Sprintf("reward already claimed: %s", definitionID),
	}
}

// ErrNotCompleted returns an error when attempting to claim an incomplete
// record.
func ErrNotCompleted(definitionID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeNotCompleted,
		Message: fmt.Sprintf("definition not completed: %s", definitionID),
	}
}

// ErrStoreError wraps progress store errors.
func ErrStoreError(operation string, err error) *EngineError {
	return &EngineError{
		Code:    ErrCodeStoreError,
		Message: fmt.Sprintf("store error during %s", operation),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for invalid catalog configuration.
func ErrConfigInvalid(reason string) *EngineError {
	return &EngineError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
	}
}

// ErrRewardGrantFailed returns an error when reward issuance fails.
func ErrRewardGrantFailed(rewardKind, definitionID string, err error) *EngineError {
	return &EngineError{
		Code:    ErrCodeRewardGrantFailed,
		Message: fmt.Sprintf("failed to grant %s reward for %s", rewardKind, definitionID),
		Err:     err,
	}
}

// ErrBonusTemplateNotFound returns an error when a claim references a bonus
// template that does not exist.
func ErrBonusTemplateNotFound(templateID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeBonusTemplateNotFound,
		Message: fmt.Sprintf("bonus template not found: %s", templateID),
	}
}

// ErrRewardNotConfigured returns an error when a claim targets a definition
// whose reward resolves to nothing usable.
func ErrRewardNotConfigured(definitionID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeRewardNotConfigured,
		Message: fmt.Sprintf("definition has no usable reward: %s", definitionID),
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *EngineError {
	return &EngineError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}
