package client

import (
	"context"
	"errors"
	"strings"

	"progression-engine/pkg/domain"
)

// Error types for platform wallet/bonus service errors.
// These indicate non-retryable errors that should fail immediately.

// PlatformError represents an error response from the platform service.
// It includes the HTTP status code for proper error classification.
type PlatformError struct {
	StatusCode int
	Message    string
}

func (e *PlatformError) Error() string {
	return e.Message
}

// HTTPStatusCode returns the HTTP status code from the platform response.
func (e *PlatformError) HTTPStatusCode() int {
	return e.StatusCode
}

// BadRequestError indicates invalid request parameters (400).
// Examples: invalid points amount, invalid bonus template reference
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return "bad request: " + e.Message
}

func (e *BadRequestError) HTTPStatusCode() int {
	return 400
}

// NotFoundError indicates resource not found (404).
// Examples: player wallet doesn't exist, bonus template not configured
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return "resource not found: " + e.Resource
}

func (e *NotFoundError) HTTPStatusCode() int {
	return 404
}

// ForbiddenError indicates insufficient permissions (403).
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Message
}

func (e *ForbiddenError) HTTPStatusCode() int {
	return 403
}

// AuthenticationError indicates authentication failure (401).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Message
}

func (e *AuthenticationError) HTTPStatusCode() int {
	return 401
}

// HTTPStatusCodeError is an interface for errors that include HTTP status codes.
type HTTPStatusCodeError interface {
	error
	HTTPStatusCode() int
}

// IsRetryableHTTPStatus determines if an HTTP status code should be retried.
//
// Non-retryable status codes (4xx client errors):
//   - 400, 401, 403, 404, 409, 422
//
// Retryable status codes:
//   - 408, 429, 500, 502, 503, 504
func IsRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 400, 401, 403, 404, 409, 422:
		// Client errors - non-retryable
		return false
	case 408, 429, 500, 502, 503, 504:
		// Timeouts and server errors - retryable
		return true
	default:
		// For unknown codes, treat 4xx as non-retryable, 5xx as retryable
		if statusCode >= 400 && statusCode < 500 {
			return false
		}
		return true
	}
}

// IsRetryableError determines if an error from RewardClient should be retried.
//
// Classification strategy:
// 1. If error implements HTTPStatusCodeError, check status code (most reliable)
// 2. If error is a known typed error, use its status code
// 3. Fallback to error message pattern matching (for generic errors)
//
// Claims themselves are never retried by the engine; callers that retry a
// failed claim use this to decide whether retrying could ever succeed.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Strategy 1: Check for HTTP status code (most reliable)
	var httpErr HTTPStatusCodeError
	if errors.As(err, &httpErr) {
		return IsRetryableHTTPStatus(httpErr.HTTPStatusCode())
	}

	// Strategy 2: Check for known typed errors
	var badRequest *BadRequestError
	if errors.As(err, &badRequest) {
		return IsRetryableHTTPStatus(badRequest.HTTPStatusCode())
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return IsRetryableHTTPStatus(notFound.HTTPStatusCode())
	}

	var forbidden *ForbiddenError
	if errors.As(err, &forbidden) {
		return IsRetryableHTTPStatus(forbidden.HTTPStatusCode())
	}

	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return IsRetryableHTTPStatus(authErr.HTTPStatusCode())
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return IsRetryableHTTPStatus(platformErr.HTTPStatusCode())
	}

	// Strategy 3: Fallback to pattern matching for generic errors
	errMsg := strings.ToLower(err.Error())

	// Non-retryable patterns (4xx-like errors)
	nonRetryablePatterns := []string{
		"bad request",
		"invalid argument",
		"not found",
		"forbidden",
		"unauthorized",
		"authentication failed",
		"permission denied",
		"invalid points",
		"invalid bonus template",
		"wallet not found",
		"template not found",
	}

	for _, pattern := range nonRetryablePatterns {
		if strings.Contains(errMsg, pattern) {
			return false
		}
	}

	// All other errors are considered retryable
	// (network timeouts, 502/503, connection refused, etc.)
	return true
}

// RewardClient integrates with the platform's wallet and bonus services to
// issue rewards when a player claims a completed definition.
type RewardClient interface {
	// CreditWallet credits a player's points wallet.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - playerID: Player's unique identifier
	//   - points: Points to credit (always positive)
	//
	// Returns error if the credit fails.
	CreditWallet(ctx context.Context, playerID string, points int) error

	// MintBonus registers a bonus instance minted from a template.
	// The instance is fully populated by the engine, including its source
	// definition tag and expiry.
	//
	// Returns error if the platform rejects the instance.
	MintBonus(ctx context.Context, instance *domain.BonusInstance) error
}
