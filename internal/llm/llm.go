package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/shared/metrics"
	"careerlaunch-backend/internal/shared/telemetry"
)

var (
	ErrModelUnavailable     = errors.New("model unavailable")
	ErrMalformedModelOutput = errors.New("malformed model output")
)

// Tier selects a model class; providers map tiers to concrete model names.
type Tier string

const (
	TierStandard Tier = "standard"
	TierLite     Tier = "lite"
)

// Models maps tiers to provider model names.
type Models struct {
	Standard string
	Lite     string
}

// For returns the model configured for tier, falling back to Standard.
func (m Models) For(tier Tier) string {
	if tier == TierLite && strings.TrimSpace(m.Lite) != "" {
		return m.Lite
	}
	return m.Standard
}

// Request is one chat completion.
type Request struct {
	Task        string
	System      string
	Prompt      string
	JSON        bool
	Temperature *float32
	MaxTokens   int
	Tier        Tier
}

// Client abstracts LLM providers. Implementations make exactly one upstream call.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Temperature is a convenience for Request.Temperature.
func Temperature(v float32) *float32 {
	return &v
}

// Complete runs req and records latency and outcome.
func Complete(ctx context.Context, client Client, req Request) (string, error) {
	if client == nil {
		return "", fmt.Errorf("%w: no client configured", ErrModelUnavailable)
	}
	metrics.IncModelRequest(req.Task)
	start := time.Now()
	out, err := client.Complete(ctx, req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveModelLatencyMs(elapsed)

	fields := map[string]any{
		"task":       req.Task,
		"tier":       string(req.Tier),
		"json":       req.JSON,
		"latency_ms": elapsed,
	}
	if err != nil {
		metrics.IncModelFailure(req.Task)
		fields["error"] = err.Error()
		telemetry.Error("model.call_failed", fields)
		return "", err
	}
	fields["output_chars"] = len(out)
	telemetry.Info("model.call", fields)
	return out, nil
}

// CompleteJSON runs req in JSON mode and parses the reply into a Document.
func CompleteJSON(ctx context.Context, client Client, req Request) (document.Document, error) {
	req.JSON = true
	raw, err := Complete(ctx, client, req)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse([]byte(CleanJSONBlock(raw)))
	if err != nil {
		metrics.IncModelFailure(req.Task)
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}
	return doc, nil
}

// CleanJSONBlock strips markdown code fences around a JSON reply.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// PlaceholderClient stands in when no provider credentials are configured.
// Every call fails with ErrModelUnavailable.
type PlaceholderClient struct {
	Reason string
}

// Complete implements Client.
func (p PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	reason := p.Reason
	if reason == "" {
		reason = "no provider configured"
	}
	return "", fmt.Errorf("%w: %s", ErrModelUnavailable, reason)
}
