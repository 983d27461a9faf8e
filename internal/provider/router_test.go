package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseforge/internal/types"
)

// mockClient replays a scripted sequence of results; once the script is
// exhausted the final entry repeats.
type mockClient struct {
	mu     sync.Mutex
	script []func() (string, error)
	calls  int
}

func (m *mockClient) Chat(ctx context.Context, _ []types.ChatMessage, _ *types.GenerationConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if i >= len(m.script) {
		i = len(m.script) - 1
	}
	return m.script[i]()
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func succeed(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func fail(kind ErrorKind) func() (string, error) {
	return func() (string, error) {
		return "", newError("mock", kind, "scripted failure")
	}
}

func testHandle(name string, client types.LLMClient) *Handle {
	return &Handle{Name: name, Client: client, Available: true}
}

// testRouter builds a router whose sleep records requested backoff delays
// instead of waiting.
func testRouter(t *testing.T, policy RetryPolicy, handles ...*Handle) (*Router, *[]time.Duration) {
	t.Helper()
	r, err := NewRouter(handles, policy)
	require.NoError(t, err)
	var delays []time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return r, &delays
}

func userMessages() []types.ChatMessage {
	return []types.ChatMessage{{Role: "user", Content: "generate test cases"}}
}

func TestNewRouter_NoAvailableProvider(t *testing.T) {
	_, err := NewRouter([]*Handle{{Name: "anthropic", Available: false}}, DefaultRetryPolicy())
	require.Error(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
}

func TestGenerate_RetryableThenSuccess(t *testing.T) {
	client := &mockClient{script: []func() (string, error){
		fail(KindRateLimit),
		fail(KindNetwork),
		succeed("done"),
	}}
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 8 * time.Second}
	r, delays := testRouter(t, policy, testHandle("anthropic", client))

	text, err := r.Generate(context.Background(), userMessages(), GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, 3, client.callCount())
	// Exponential backoff before the second and third attempts.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *delays)
}

func TestGenerate_BackoffCappedAtMaxDelay(t *testing.T) {
	client := &mockClient{script: []func() (string, error){fail(KindRateLimit)}}
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: 2 * time.Second}
	r, delays := testRouter(t, policy, testHandle("anthropic", client))

	_, err := r.Generate(context.Background(), userMessages(), GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 2 * time.Second, 2 * time.Second,
	}, *delays)
}

func TestGenerate_TerminalErrorNoRetry(t *testing.T) {
	client := &mockClient{script: []func() (string, error){fail(KindAuth)}}
	r, delays := testRouter(t, DefaultRetryPolicy(), testHandle("anthropic", client))

	_, err := r.Generate(context.Background(), userMessages(), GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, 1, client.callCount())
	assert.Empty(t, *delays)
	assert.Equal(t, KindAuth, KindOf(err))

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Attempts)
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	client := &mockClient{script: []func() (string, error){fail(KindRateLimit)}}
	r, _ := testRouter(t, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}, testHandle("anthropic", client))

	_, err := r.Generate(context.Background(), userMessages(), GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, 3, client.callCount())
	assert.Equal(t, KindRateLimit, KindOf(err))

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Attempts)
}

func TestGenerate_FallbackInRegistrationOrder(t *testing.T) {
	broken := &mockClient{script: []func() (string, error){fail(KindNetwork)}}
	alsoBroken := &mockClient{script: []func() (string, error){fail(KindNetwork)}}
	working := &mockClient{script: []func() (string, error){succeed("from gemini")}}
	policy := RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	r, _ := testRouter(t, policy,
		testHandle("anthropic", broken),
		testHandle("openai", alsoBroken),
		testHandle("gemini", working),
	)

	text, err := r.Generate(context.Background(), userMessages(), GenerateOptions{AllowFallback: true})
	require.NoError(t, err)
	assert.Equal(t, "from gemini", text)
	// Each exhausted provider used its full retry budget before fallback.
	assert.Equal(t, 2, broken.callCount())
	assert.Equal(t, 2, alsoBroken.callCount())
	assert.Equal(t, 1, working.callCount())
}

func TestGenerate_NoFallbackWithoutOptIn(t *testing.T) {
	broken := &mockClient{script: []func() (string, error){fail(KindNetwork)}}
	working := &mockClient{script: []func() (string, error){succeed("unused")}}
	policy := RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	r, _ := testRouter(t, policy,
		testHandle("anthropic", broken),
		testHandle("openai", working),
	)

	_, err := r.Generate(context.Background(), userMessages(), GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, 0, working.callCount())
}

func TestGenerate_PinnedProvider(t *testing.T) {
	first := &mockClient{script: []func() (string, error){succeed("first")}}
	second := &mockClient{script: []func() (string, error){succeed("second")}}
	r, _ := testRouter(t, DefaultRetryPolicy(),
		testHandle("anthropic", first),
		testHandle("openai", second),
	)

	text, err := r.Generate(context.Background(), userMessages(), GenerateOptions{Provider: "openai"})
	require.NoError(t, err)
	assert.Equal(t, "second", text)
	assert.Equal(t, 0, first.callCount())
}

func TestGenerate_UnknownProvider(t *testing.T) {
	r, _ := testRouter(t, DefaultRetryPolicy(),
		testHandle("anthropic", &mockClient{script: []func() (string, error){succeed("x")}}))

	_, err := r.Generate(context.Background(), userMessages(), GenerateOptions{Provider: "nonesuch"})
	require.Error(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
}

func TestGenerate_CancelledDuringBackoff(t *testing.T) {
	client := &mockClient{script: []func() (string, error){fail(KindRateLimit)}}
	r, err := NewRouter([]*Handle{testHandle("anthropic", client)},
		RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second})
	require.NoError(t, err)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	_, err = r.Generate(context.Background(), userMessages(), GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.Equal(t, 1, client.callCount())
}

func TestHandle_ModelMetadata(t *testing.T) {
	h := &Handle{
		Name:           "anthropic",
		Available:      true,
		models:         anthropicModels,
		contextWindows: anthropicContextWindows,
	}
	assert.True(t, h.SupportsModel("claude-sonnet-4-20250514"))
	assert.False(t, h.SupportsModel("gpt-4o"))
	assert.Equal(t, 200000, h.ContextWindow("claude-sonnet-4-20250514"))
	assert.Equal(t, defaultContextWindow, h.ContextWindow("some-future-model"))
}

func TestGenerateBatch(t *testing.T) {
	client := &mockClient{script: []func() (string, error){succeed("reply")}}
	r, _ := testRouter(t, DefaultRetryPolicy(), testHandle("anthropic", client))

	batches := [][]types.ChatMessage{
		{{Role: "user", Content: "one"}},
		{{Role: "user", Content: "two"}},
		{{Role: "user", Content: "three"}},
	}
	results, err := r.GenerateBatch(context.Background(), batches, GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"reply", "reply", "reply"}, results)
	assert.Equal(t, 3, client.callCount())
}

func TestGenerateBatch_FirstErrorWins(t *testing.T) {
	client := &mockClient{script: []func() (string, error){fail(KindAuth)}}
	r, _ := testRouter(t, DefaultRetryPolicy(), testHandle("anthropic", client))

	_, err := r.GenerateBatch(context.Background(),
		[][]types.ChatMessage{userMessages(), userMessages()}, GenerateOptions{})
	require.Error(t, err)
	var pe *Error
	assert.True(t, errors.As(err, &pe))
}
