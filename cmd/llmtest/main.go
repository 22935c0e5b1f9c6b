package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/culinarylabs/recipe-chat/cmd/llmfactory"
	"github.com/culinarylabs/recipe-chat/internal/chat"
	appconfig "github.com/culinarylabs/recipe-chat/internal/config"
	"github.com/culinarylabs/recipe-chat/pkg/logging"
)

// Smoke test for the configured completion provider: forwards a short cooking
// conversation and prints the reply.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, closeClient, err := llmfactory.BuildClient(ctx, cfg)
	if err != nil {
		fmt.Printf("failed to build LLM client: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeClient() }()

	fw := chat.NewForwarder(client, cfg.ModelName, logger,
		chat.WithMaxTokens(int32(cfg.LLMMaxTokens)),
		chat.WithTemperature(float32(cfg.LLMTemperature)),
	)

	history := []chat.ChatMessage{
		{Role: chat.RoleUser, Content: "I have chicken thighs, lemons, and rice. What should I make?"},
		{Role: chat.RoleAssistant, Content: "Lemon chicken with rice is a great fit. Want the full recipe?"},
		{Role: chat.RoleUser, Content: "Yes please, with timings."},
	}

	fmt.Printf("provider=%s model=%s\n\n", cfg.LLMProvider, fw.Model())

	start := time.Now()
	updated, err := fw.Forward(ctx, history)
	if err != nil {
		fmt.Printf("completion failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("reply (%v):\n\n%s\n", time.Since(start).Round(time.Millisecond), updated[len(updated)-1].Content)
}
