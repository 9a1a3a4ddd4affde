package gemini

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestCompleteOnNilClient(t *testing.T) {
	var c *Client
	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for nil client")
	}
	if c.Model() != "" {
		t.Fatal("expected empty model for nil client")
	}
}

func TestResponseTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: &genai.Content{Parts: []*genai.Part{{Text: " {\"a\":1} "}, nil, {Text: ""}}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "tail"}}}},
		},
	}
	got, err := responseText(resp)
	if err != nil {
		t.Fatalf("responseText: %v", err)
	}
	if got != "{\"a\":1}\ntail" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestResponseTextEmpty(t *testing.T) {
	if _, err := responseText(&genai.GenerateContentResponse{}); err == nil {
		t.Fatal("expected error for empty response")
	}
	if _, err := responseText(nil); err == nil {
		t.Fatal("expected error for nil response")
	}
}
