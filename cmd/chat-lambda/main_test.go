package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/culinarylabs/recipe-chat/internal/chat"
)

type stubResponder struct {
	out []chat.ChatMessage
	err error
}

func (s *stubResponder) Forward(_ context.Context, _ []chat.ChatMessage) ([]chat.ChatMessage, error) {
	return s.out, s.err
}

func postEvent(path, body string) events.APIGatewayV2HTTPRequest {
	evt := events.APIGatewayV2HTTPRequest{RawPath: path, Body: body}
	evt.RequestContext.HTTP.Method = http.MethodPost
	return evt
}

func TestHandleHealth(t *testing.T) {
	evt := events.APIGatewayV2HTTPRequest{RawPath: "/health"}
	evt.RequestContext.HTTP.Method = http.MethodGet

	resp, err := handle(context.Background(), &stubResponder{}, evt)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Body != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleChat(t *testing.T) {
	stub := &stubResponder{out: []chat.ChatMessage{
		{Role: chat.RoleSystem, Content: chat.SystemPrompt},
		{Role: chat.RoleUser, Content: "Soup ideas?"},
		{Role: chat.RoleAssistant, Content: "Try a simple minestrone."},
	}}

	resp, err := handle(context.Background(), stub, postEvent("/chat", `{"messages": [{"role": "user", "content": "Soup ideas?"}]}`))
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}

	var out chatResponse
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.Reply != "Try a simple minestrone." {
		t.Errorf("reply = %q", out.Reply)
	}
	if len(out.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(out.Messages))
	}
}

func TestHandleBase64Body(t *testing.T) {
	stub := &stubResponder{out: []chat.ChatMessage{
		{Role: chat.RoleAssistant, Content: "ok"},
	}}

	evt := postEvent("/chat", base64.StdEncoding.EncodeToString([]byte(`{"messages": []}`)))
	evt.IsBase64Encoded = true

	resp, err := handle(context.Background(), stub, evt)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}
}

func TestHandleUnknownRole(t *testing.T) {
	resp, err := handle(context.Background(), &stubResponder{}, postEvent("/chat", `{"messages": [{"role": "moderator", "content": "hi"}]}`))
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.Error == "" || !strings.Contains(out.Error, "moderator") {
		t.Fatalf("error should name the rejected role, got %q", out.Error)
	}
}

func TestHandleBadJSON(t *testing.T) {
	resp, err := handle(context.Background(), &stubResponder{}, postEvent("/chat", `{"messages": [`))
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHandleProviderFailure(t *testing.T) {
	stub := &stubResponder{err: &chat.ProviderError{Model: "gpt-4o-mini", Err: errors.New("down")}}

	resp, err := handle(context.Background(), stub, postEvent("/chat", `{"messages": []}`))
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHandleMethodNotAllowed(t *testing.T) {
	evt := events.APIGatewayV2HTTPRequest{RawPath: "/chat"}
	evt.RequestContext.HTTP.Method = http.MethodGet

	resp, err := handle(context.Background(), &stubResponder{}, evt)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHandleUnknownPath(t *testing.T) {
	resp, err := handle(context.Background(), &stubResponder{}, postEvent("/nope", `{}`))
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
