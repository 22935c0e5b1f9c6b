package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/culinarylabs/recipe-chat/cmd/llmfactory"
	"github.com/culinarylabs/recipe-chat/internal/chat"
	appconfig "github.com/culinarylabs/recipe-chat/internal/config"
	"github.com/culinarylabs/recipe-chat/pkg/logging"
)

type responder interface {
	Forward(ctx context.Context, history []chat.ChatMessage) ([]chat.ChatMessage, error)
}

type chatRequest struct {
	Messages []chat.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Messages []chat.ChatMessage `json:"messages"`
	Reply    string             `json:"reply"`
}

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	client, _, err := llmfactory.BuildClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to build LLM client", "error", err)
		panic(err)
	}

	fw := chat.NewForwarder(client, cfg.ModelName, logger,
		chat.WithMaxTokens(int32(cfg.LLMMaxTokens)),
		chat.WithTemperature(float32(cfg.LLMTemperature)),
	)

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, fw, evt)
	})
}

func handle(ctx context.Context, fw responder, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	path := strings.TrimSpace(evt.RawPath)
	if path == "" {
		path = strings.TrimSpace(evt.RequestContext.HTTP.Path)
	}

	if path == "/health" || path == "/_health" {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK, Body: "ok"}, nil
	}

	if method != http.MethodPost {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusMethodNotAllowed}, nil
	}
	if path != "/chat" {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNotFound}, nil
	}

	body, err := decodeBody(evt)
	if err != nil {
		return jsonError(http.StatusBadRequest, "invalid body"), nil
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return jsonError(http.StatusBadRequest, "invalid request body"), nil
	}

	for i, msg := range req.Messages {
		switch msg.Role {
		case chat.RoleSystem, chat.RoleUser, chat.RoleAssistant:
		default:
			return jsonError(http.StatusBadRequest, fmt.Sprintf("unsupported role %q at index %d", msg.Role, i)), nil
		}
	}

	updated, err := fw.Forward(ctx, req.Messages)
	if err != nil {
		return jsonError(http.StatusBadGateway, "completion provider failed"), nil
	}

	payload, err := json.Marshal(chatResponse{
		Messages: updated,
		Reply:    updated[len(updated)-1].Content,
	})
	if err != nil {
		return jsonError(http.StatusInternalServerError, "failed to encode response"), nil
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Body:       string(payload),
		Headers:    map[string]string{"content-type": "application/json"},
	}, nil
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	return base64.StdEncoding.DecodeString(evt.Body)
}

func jsonError(status int, msg string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    map[string]string{"content-type": "application/json"},
	}
}
