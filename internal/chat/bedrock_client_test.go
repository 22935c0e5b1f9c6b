package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type mockConverseAPI struct {
	out   *bedrockruntime.ConverseOutput
	err   error
	input *bedrockruntime.ConverseInput
}

func (m *mockConverseAPI) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

func converseReply(text string) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{
				Role: brtypes.ConversationRoleAssistant,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: text},
				},
			},
		},
		StopReason: brtypes.StopReasonEndTurn,
		Usage: &brtypes.TokenUsage{
			InputTokens:  aws.Int32(100),
			OutputTokens: aws.Int32(20),
			TotalTokens:  aws.Int32(120),
		},
	}
}

func TestBedrockComplete(t *testing.T) {
	mock := &mockConverseAPI{out: converseReply("  Braise it low and slow.  ")}
	client := NewBedrockLLMClient(mock)

	resp, err := client.Complete(context.Background(), LLMRequest{
		Model:       "anthropic.claude-3-5-haiku-20241022-v1:0",
		System:      []string{"You are a cooking assistant."},
		Messages:    []ChatMessage{{Role: RoleUser, Content: "Best way to cook brisket?"}},
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if resp.Text != "Braise it low and slow." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.StopReason != string(brtypes.StopReasonEndTurn) {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if resp.Usage.InputTokens != 100 || resp.Usage.OutputTokens != 20 || resp.Usage.TotalTokens != 120 {
		t.Errorf("usage = %+v", resp.Usage)
	}

	in := mock.input
	if aws.ToString(in.ModelId) != "anthropic.claude-3-5-haiku-20241022-v1:0" {
		t.Errorf("model id = %q", aws.ToString(in.ModelId))
	}
	if len(in.System) != 1 {
		t.Errorf("expected 1 system block, got %d", len(in.System))
	}
	if len(in.Messages) != 1 || in.Messages[0].Role != brtypes.ConversationRoleUser {
		t.Errorf("unexpected messages: %+v", in.Messages)
	}
	if in.InferenceConfig == nil || aws.ToInt32(in.InferenceConfig.MaxTokens) != 512 {
		t.Errorf("inference config = %+v", in.InferenceConfig)
	}
}

func TestBedrockSystemRoleMessagesBecomeSystemBlocks(t *testing.T) {
	mock := &mockConverseAPI{out: converseReply("ok")}
	client := NewBedrockLLMClient(mock)

	_, err := client.Complete(context.Background(), LLMRequest{
		Model: "anthropic.claude-3-5-haiku-20241022-v1:0",
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: "Answer briefly."},
			{Role: RoleUser, Content: "hi"},
		},
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if len(mock.input.System) != 1 {
		t.Fatalf("expected system message folded into system blocks, got %d", len(mock.input.System))
	}
	if len(mock.input.Messages) != 1 {
		t.Fatalf("expected 1 conversation message, got %d", len(mock.input.Messages))
	}
}

func TestBedrockRequiresModel(t *testing.T) {
	client := NewBedrockLLMClient(&mockConverseAPI{out: converseReply("ok")})
	_, err := client.Complete(context.Background(), LLMRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for empty model id")
	}
}

func TestBedrockUnsupportedRole(t *testing.T) {
	client := NewBedrockLLMClient(&mockConverseAPI{out: converseReply("ok")})
	_, err := client.Complete(context.Background(), LLMRequest{
		Model:    "anthropic.claude-3-5-haiku-20241022-v1:0",
		Messages: []ChatMessage{{Role: "tool", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for unsupported role")
	}
}

func TestBedrockPropagatesAPIError(t *testing.T) {
	mock := &mockConverseAPI{err: errors.New("throttled")}
	client := NewBedrockLLMClient(mock)

	_, err := client.Complete(context.Background(), LLMRequest{
		Model:    "anthropic.claude-3-5-haiku-20241022-v1:0",
		Messages: []ChatMessage{{Role: RoleUser, Content: "hi"}},
	})
	if !errors.Is(err, mock.err) {
		t.Fatalf("expected api error passed through, got %v", err)
	}
}

func TestBedrockEmptyOutput(t *testing.T) {
	mock := &mockConverseAPI{out: &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{Role: brtypes.ConversationRoleAssistant},
		},
	}}
	client := NewBedrockLLMClient(mock)

	_, err := client.Complete(context.Background(), LLMRequest{
		Model:    "anthropic.claude-3-5-haiku-20241022-v1:0",
		Messages: []ChatMessage{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for empty output message")
	}
}
