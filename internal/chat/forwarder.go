package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/culinarylabs/recipe-chat/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var chatTracer = otel.Tracer("recipechat.internal.chat")

var llmLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "recipechat",
		Subsystem: "chat",
		Name:      "llm_latency_seconds",
		Help:      "Latency of LLM completions",
		Buckets:   []float64{0.25, 0.5, 1, 2, 3, 4, 5, 6, 8, 10, 15, 20, 30},
	},
	[]string{"model", "status"},
)

var llmTokensTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "recipechat",
		Subsystem: "chat",
		Name:      "llm_tokens_total",
		Help:      "Tokens used by the LLM",
	},
	[]string{"model", "type"}, // type: input, output, total
)

func init() {
	prometheus.MustRegister(llmLatency)
	prometheus.MustRegister(llmTokensTotal)
}

// RegisterMetrics registers chat metrics with a custom registry.
// Use this when exposing a non-default registry.
func RegisterMetrics(reg prometheus.Registerer) {
	if reg == nil || reg == prometheus.DefaultRegisterer {
		return
	}
	reg.MustRegister(llmLatency, llmTokensTotal)
}

// ErrEmptyCompletion is reported when the provider answers without any text.
var ErrEmptyCompletion = errors.New("chat: provider returned an empty completion")

// ProviderError wraps any failure from the completion provider: transport
// errors, non-2xx responses, and malformed or empty payloads. The forwarder
// never retries; the caller decides what to do with it.
type ProviderError struct {
	Model string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("chat: completion failed for model %s: %v", e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type ForwarderOption func(*Forwarder)

// WithMaxTokens caps the completion length requested from the provider.
func WithMaxTokens(n int32) ForwarderOption {
	return func(f *Forwarder) {
		if n > 0 {
			f.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature. Negative means provider default.
func WithTemperature(t float32) ForwarderOption {
	return func(f *Forwarder) {
		f.temperature = t
	}
}

// Forwarder produces the next conversation state: it guarantees the system
// prompt heads the history, requests exactly one completion from the
// configured provider, and appends the assistant reply. It holds no mutable
// state, so one instance is safe to share across requests.
type Forwarder struct {
	client      LLMClient
	model       string
	logger      *logging.Logger
	maxTokens   int32
	temperature float32
}

// NewForwarder returns a forwarder bound to one provider client and model.
func NewForwarder(client LLMClient, model string, logger *logging.Logger, opts ...ForwarderOption) *Forwarder {
	if client == nil {
		panic("chat: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	f := &Forwarder{
		client:      client,
		model:       model,
		logger:      logger,
		maxTokens:   1024,
		temperature: -1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Model reports the configured model identifier.
func (f *Forwarder) Model() string {
	return f.model
}

// Forward returns a new history with the assistant's reply appended. The
// returned sequence is always exactly one message longer than the working
// sequence (the input, system-prepended when needed); the input slice is
// never modified. Any provider failure surfaces as *ProviderError and no
// history is returned. No timeout is imposed here; bound the call through
// ctx or the provider client.
func (f *Forwarder) Forward(ctx context.Context, history []ChatMessage) ([]ChatMessage, error) {
	ctx, span := chatTracer.Start(ctx, "chat.forward")
	defer span.End()

	working := withSystemPrompt(history)
	span.SetAttributes(
		attribute.String("recipechat.llm.model", f.model),
		attribute.Int("recipechat.history_length", len(working)),
	)

	system, messages := splitSystemAndMessages(working)
	req := LLMRequest{
		Model:       f.model,
		System:      system,
		Messages:    messages,
		MaxTokens:   f.maxTokens,
		Temperature: f.temperature,
	}

	start := time.Now()
	resp, err := f.client.Complete(ctx, req)
	latency := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}
	llmLatency.WithLabelValues(f.model, status).Observe(latency.Seconds())
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Float64("recipechat.llm.latency_ms", float64(latency.Milliseconds())),
			attribute.Int("recipechat.llm.input_tokens", int(resp.Usage.InputTokens)),
			attribute.Int("recipechat.llm.output_tokens", int(resp.Usage.OutputTokens)),
			attribute.String("recipechat.llm.stop_reason", resp.StopReason),
		)
	}
	if err != nil {
		span.RecordError(err)
		f.logger.Warn("llm completion failed", "model", f.model, "latency_ms", latency.Milliseconds(), "error", err)
		return nil, &ProviderError{Model: f.model, Err: err}
	}

	if resp.Usage.InputTokens > 0 {
		llmTokensTotal.WithLabelValues(f.model, "input").Add(float64(resp.Usage.InputTokens))
	}
	if resp.Usage.OutputTokens > 0 {
		llmTokensTotal.WithLabelValues(f.model, "output").Add(float64(resp.Usage.OutputTokens))
	}
	if resp.Usage.TotalTokens > 0 {
		llmTokensTotal.WithLabelValues(f.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		span.RecordError(ErrEmptyCompletion)
		return nil, &ProviderError{Model: f.model, Err: ErrEmptyCompletion}
	}

	f.logger.Info("llm completion finished",
		"model", f.model,
		"latency_ms", latency.Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"total_tokens", resp.Usage.TotalTokens,
		"stop_reason", resp.StopReason,
	)

	return append(working, ChatMessage{Role: RoleAssistant, Content: text}), nil
}

// withSystemPrompt copies the history into a fresh slice headed by the system
// prompt. The prompt is prepended only when the history does not already open
// with a system message, so it is never duplicated.
func withSystemPrompt(history []ChatMessage) []ChatMessage {
	if len(history) > 0 && history[0].Role == RoleSystem {
		working := make([]ChatMessage, len(history), len(history)+1)
		copy(working, history)
		return working
	}
	working := make([]ChatMessage, 0, len(history)+2)
	working = append(working, ChatMessage{Role: RoleSystem, Content: SystemPrompt})
	return append(working, history...)
}

func splitSystemAndMessages(history []ChatMessage) ([]string, []ChatMessage) {
	if len(history) == 0 {
		return nil, nil
	}
	system := make([]string, 0, 2)
	messages := make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		messages = append(messages, msg)
	}
	return system, messages
}
