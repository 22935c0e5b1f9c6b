// Package llmfactory builds the provider client every binary shares, so the
// API server, the Lambda, and the smoke-test CLI all resolve LLM_PROVIDER the
// same way.
package llmfactory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/culinarylabs/recipe-chat/cmd/awsconfig"
	"github.com/culinarylabs/recipe-chat/internal/chat"
	appconfig "github.com/culinarylabs/recipe-chat/internal/config"
)

// BuildClient returns the LLM client for cfg.LLMProvider. The returned close
// func releases provider resources and may be nil-safe to ignore for
// providers without one.
func BuildClient(ctx context.Context, cfg *appconfig.Config) (chat.LLMClient, func() error, error) {
	noop := func() error { return nil }

	switch cfg.LLMProvider {
	case "openai":
		return chat.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout), noop, nil
	case "bedrock":
		awsCfg, err := awsconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		return chat.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg)), noop, nil
	case "gemini":
		client, err := chat.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
