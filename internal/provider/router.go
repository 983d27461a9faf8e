package provider

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"caseforge/internal/logging"
	"caseforge/internal/types"
)

// Handle is a configured provider backend. Handles are constructed once at
// startup (or lazily on first use) and reused across requests; there is no
// per-request client allocation.
type Handle struct {
	Name      string
	Client    types.LLMClient
	Available bool

	models         []string
	contextWindows map[string]int
}

// SupportedModels returns the provider's known model list.
func (h *Handle) SupportedModels() []string { return h.models }

// SupportsModel reports whether the provider knows the model.
func (h *Handle) SupportsModel(model string) bool {
	for _, m := range h.models {
		if m == model {
			return true
		}
	}
	return false
}

// ContextWindow returns the context window for a model, falling back to a
// conservative default for unknown models.
func (h *Handle) ContextWindow(model string) int {
	if w, ok := h.contextWindows[model]; ok {
		return w
	}
	return defaultContextWindow
}

// RetryPolicy bounds the per-provider retry loop. Backoff is exponential
// from BaseDelay, capped at MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy matches the backends' observed rate-limit behavior.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 8 * time.Second}
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt-1)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// GenerateOptions selects and configures a single logical generation request.
type GenerateOptions struct {
	// Provider pins the request to one backend by name. Empty selects the
	// first available handle in registration order.
	Provider string
	// AllowFallback lets the router try the remaining configured providers
	// in registration order after exhausting the selected provider.
	AllowFallback bool
	// Config carries per-request generation parameters.
	Config *types.GenerationConfig
}

// Router owns the provider-handle registry and applies the retry/backoff
// discipline: SELECT -> ATTEMPT -> (SUCCESS | retryable failure -> backoff ->
// ATTEMPT | terminal failure). The registry is built once and read-mostly
// afterwards; concurrent requests share it without locking.
type Router struct {
	handles []*Handle
	byName  map[string]*Handle
	policy  RetryPolicy
	log     *zap.Logger

	// sleep is injectable so tests can observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRouter builds a router over the given handles. It fails fast with a
// config error when no handle is available, rather than attempting a
// network call later.
func NewRouter(handles []*Handle, policy RetryPolicy) (*Router, error) {
	available := 0
	byName := make(map[string]*Handle, len(handles))
	for _, h := range handles {
		byName[h.Name] = h
		if h.Available {
			available++
		}
	}
	if available == 0 {
		return nil, &Error{Provider: "router", Kind: KindConfig,
			Err: errors.New("no provider configured; set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GEMINI_API_KEY")}
	}
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	return &Router{
		handles: handles,
		byName:  byName,
		policy:  policy,
		log:     logging.Get(logging.CategoryRouter),
		sleep:   sleepCtx,
	}, nil
}

// Handles returns the registered handles in registration order.
func (r *Router) Handles() []*Handle { return r.handles }

// Generate issues one logical generation request. Retryable failures
// (rate limit, timeout, transient network) are retried with exponential
// backoff against the selected provider only; terminal failures surface
// immediately. With AllowFallback the remaining providers are tried in
// registration order after the primary is exhausted, each with its own
// retry budget.
func (r *Router) Generate(ctx context.Context, messages []types.ChatMessage, opts GenerateOptions) (string, error) {
	order, err := r.selectOrder(opts)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, h := range order {
		text, err := r.attemptProvider(ctx, h, messages, opts.Config)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !opts.AllowFallback {
			return "", err
		}
		r.log.Warn("provider exhausted, falling back",
			zap.String("provider", h.Name), zap.Error(err))
	}
	return "", lastErr
}

// selectOrder resolves the provider attempt order for one request.
func (r *Router) selectOrder(opts GenerateOptions) ([]*Handle, error) {
	var primary *Handle
	if opts.Provider != "" {
		h, ok := r.byName[opts.Provider]
		if !ok {
			return nil, &Error{Provider: opts.Provider, Kind: KindConfig,
				Err: errors.New("unknown provider")}
		}
		if !h.Available {
			return nil, &Error{Provider: opts.Provider, Kind: KindConfig,
				Err: errors.New("provider not available")}
		}
		primary = h
	} else {
		for _, h := range r.handles {
			if h.Available {
				primary = h
				break
			}
		}
	}
	if primary == nil {
		return nil, &Error{Provider: "router", Kind: KindConfig,
			Err: errors.New("no provider available")}
	}

	order := []*Handle{primary}
	if opts.AllowFallback {
		for _, h := range r.handles {
			if h != primary && h.Available {
				order = append(order, h)
			}
		}
	}
	return order, nil
}

// attemptProvider runs the bounded retry loop against one provider.
func (r *Router) attemptProvider(ctx context.Context, h *Handle, messages []types.ChatMessage, cfg *types.GenerationConfig) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := r.sleep(ctx, r.policy.delay(attempt-1)); err != nil {
				return "", &Error{Provider: h.Name, Kind: KindTimeout, Attempts: attempt - 1, Err: err}
			}
		}

		text, err := h.Client.Chat(ctx, messages, cfg)
		if err == nil {
			r.log.Debug("generation succeeded",
				zap.String("provider", h.Name), zap.Int("attempt", attempt))
			return text, nil
		}

		if !IsRetryable(err) {
			return "", withAttempts(err, h.Name, attempt)
		}
		lastErr = err
		r.log.Debug("retryable failure",
			zap.String("provider", h.Name),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return "", withAttempts(lastErr, h.Name, r.policy.MaxAttempts)
}

// withAttempts stamps the attempt count onto a provider error so the caller
// sees whether retries were attempted before it surfaced.
func withAttempts(err error, provider string, attempts int) error {
	var pe *Error
	if errors.As(err, &pe) {
		return &Error{Provider: pe.Provider, Kind: pe.Kind, Attempts: attempts, Err: pe.Err}
	}
	return &Error{Provider: provider, Kind: KindNetwork, Attempts: attempts, Err: err}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Default router construction happens under a once-only guard so concurrent
// first callers never build duplicate network clients.
var (
	defaultRouter     *Router
	defaultRouterErr  error
	defaultRouterOnce sync.Once
)

// Default returns the process-wide router, constructing it on first use from
// the user config and environment.
func Default() (*Router, error) {
	defaultRouterOnce.Do(func() {
		defaultRouter, defaultRouterErr = NewRouterFromEnv("")
	})
	return defaultRouter, defaultRouterErr
}
