package provider

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind_Retryable(t *testing.T) {
	retryable := map[ErrorKind]bool{
		KindAuth:      false,
		KindRateLimit: true,
		KindTimeout:   true,
		KindNetwork:   true,
		KindConfig:    false,
		KindResponse:  false,
	}
	for kind, want := range retryable {
		assert.Equal(t, want, kind.Retryable(), "kind %s", kind)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want ErrorKind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusRequestTimeout, KindTimeout},
		{http.StatusInternalServerError, KindNetwork},
		{http.StatusBadGateway, KindNetwork},
		{http.StatusServiceUnavailable, KindNetwork},
		{http.StatusBadRequest, KindResponse},
		{http.StatusNotFound, KindResponse},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyStatus(tt.code), "status %d", tt.code)
	}
}

func TestIsRetryable_WrappedError(t *testing.T) {
	inner := newError("anthropic", KindRateLimit, "too many requests")
	wrapped := fmt.Errorf("generation failed: %w", inner)
	assert.True(t, IsRetryable(wrapped))
	assert.Equal(t, KindRateLimit, KindOf(wrapped))

	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain error")))
}

func TestError_Message(t *testing.T) {
	single := newError("openai", KindAuth, "bad key")
	assert.Equal(t, "provider openai: auth: bad key", single.Error())

	exhausted := &Error{Provider: "openai", Kind: KindRateLimit, Attempts: 3, Err: errors.New("429")}
	assert.Equal(t, "provider openai: rate_limit after 3 attempts: 429", exhausted.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Provider: "gemini", Kind: KindNetwork, Err: cause}
	assert.True(t, errors.Is(err, cause))
}
