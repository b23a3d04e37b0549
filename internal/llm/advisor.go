package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonathan/spec-customizer/internal/prompts"
)

// DefaultAdvisorTimeout bounds a single advisory call.
const DefaultAdvisorTimeout = 30 * time.Second

// AdvisorOptions configures an Advisor.
type AdvisorOptions struct {
	Provider Provider
	Tier     ModelTier
	Timeout  time.Duration
	Retry    RetryConfig
}

// Advisor is the prompt/context text service used by charter-building flows.
// It never returns raw provider errors: every failure is a *ServiceError.
type Advisor struct {
	client Client
	opts   AdvisorOptions
}

// NewAdvisor wraps client. A nil client yields an Advisor whose calls fail
// with a configuration error.
func NewAdvisor(client Client, opts AdvisorOptions) *Advisor {
	if opts.Tier == "" {
		opts.Tier = TierLite
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultAdvisorTimeout
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = DefaultRetryConfig()
	}
	return &Advisor{client: client, opts: opts}
}

// Configured reports whether a provider client is attached.
func (a *Advisor) Configured() bool {
	return a != nil && a.client != nil
}

// Respond sends prompt with optional context and returns the reply text.
// Transient failures are retried with backoff.
func (a *Advisor) Respond(ctx context.Context, prompt, contextText string) (string, error) {
	if !a.Configured() {
		return "", &ServiceError{Kind: KindConfiguration, Message: "no advisory service configured"}
	}
	return a.do(ctx, func(cctx context.Context) (string, error) {
		return a.client.GenerateContent(cctx, BuildAdvisorPrompt(prompt, contextText), a.opts.Tier)
	})
}

// RespondJSON is Respond for JSON replies at the given tier.
func (a *Advisor) RespondJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if !a.Configured() {
		return "", &ServiceError{Kind: KindConfiguration, Message: "no advisory service configured"}
	}
	return a.do(ctx, func(cctx context.Context) (string, error) {
		return a.client.GenerateJSON(cctx, prompt, tier)
	})
}

func (a *Advisor) do(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= a.opts.Retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, a.opts.Retry.Backoff(attempt-1)); err != nil {
				return "", Classify(a.opts.Provider, errors.Join(lastErr, err))
			}
		}

		cctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
		text, err := call(cctx)
		cancel()

		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				return "", &ServiceError{Kind: KindUnknown, Provider: a.opts.Provider, Message: "empty response"}
			}
			return text, nil
		}

		lastErr = Classify(a.opts.Provider, err)
		if !IsTransient(lastErr) || ctx.Err() != nil {
			return "", lastErr
		}
	}
	return "", lastErr
}

// BuildAdvisorPrompt combines the user prompt with the surrounding context.
func BuildAdvisorPrompt(prompt, contextText string) string {
	parts := []string{prompts.MustGet(prompts.Advisor, "advisor-preamble")}
	if strings.TrimSpace(contextText) != "" {
		parts = append(parts, prompts.Format(prompts.MustGet(prompts.Advisor, "advisor-context"), map[string]string{"Context": contextText}))
	}
	parts = append(parts, prompts.Format(prompts.MustGet(prompts.Advisor, "advisor-request"), map[string]string{"Prompt": prompt}))
	return strings.Join(parts, "\n\n") + "\n"
}
