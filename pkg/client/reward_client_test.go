package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{"400 bad request", 400, false},
		{"401 unauthorized", 401, false},
		{"403 forbidden", 403, false},
		{"404 not found", 404, false},
		{"409 conflict", 409, false},
		{"422 unprocessable", 422, false},
		{"408 request timeout", 408, true},
		{"429 too many requests", 429, true},
		{"500 internal error", 500, true},
		{"502 bad gateway", 502, true},
		{"503 unavailable", 503, true},
		{"504 gateway timeout", 504, true},
		{"unknown 4xx", 418, false},
		{"unknown 5xx", 599, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableHTTPStatus(tt.statusCode))
		})
	}
}

func TestIsRetryableError_TypedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"bad request", &BadRequestError{Message: "invalid points"}, false},
		{"not found", &NotFoundError{Resource: "wallet"}, false},
		{"forbidden", &ForbiddenError{Message: "no access"}, false},
		{"authentication", &AuthenticationError{Message: "token expired"}, false},
		{"platform 500", &PlatformError{StatusCode: 500, Message: "internal"}, true},
		{"platform 503", &PlatformError{StatusCode: 503, Message: "unavailable"}, true},
		{"platform 404", &PlatformError{StatusCode: 404, Message: "missing"}, false},
		{"wrapped bad request", fmt.Errorf("credit failed: %w", &BadRequestError{Message: "bad"}), false},
		{"wrapped platform 502", fmt.Errorf("mint failed: %w", &PlatformError{StatusCode: 502, Message: "gw"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

func TestIsRetryableError_PatternFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", errors.New("player wallet not found"), false},
		{"generic unauthorized", errors.New("request unauthorized"), false},
		{"template not found", errors.New("bonus template not found"), false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"timeout", errors.New("context deadline exceeded"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "bad request: invalid points", (&BadRequestError{Message: "invalid points"}).Error())
	assert.Equal(t, "resource not found: wallet", (&NotFoundError{Resource: "wallet"}).Error())
	assert.Equal(t, "forbidden: no access", (&ForbiddenError{Message: "no access"}).Error())
	assert.Equal(t, "authentication failed: expired", (&AuthenticationError{Message: "expired"}).Error())
	assert.Equal(t, 400, (&BadRequestError{}).HTTPStatusCode())
	assert.Equal(t, 404, (&NotFoundError{}).HTTPStatusCode())
	assert.Equal(t, 403, (&ForbiddenError{}).HTTPStatusCode())
	assert.Equal(t, 401, (&AuthenticationError{}).HTTPStatusCode())
}
