package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"interview-coach/internal/llm"
	"interview-coach/internal/shared/telemetry"
)

const (
	// DefaultModel is the Anthropic model used when LLM_MODEL is unset.
	DefaultModel     = "anthropic.claude-3-haiku-20240307-v1:0"
	anthropicVersion = "bedrock-2023-05-31"
	defaultMaxTokens = 2000
)

// InvokeAPI is the subset of the Bedrock runtime client used here.
type InvokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client implements llm.Client with Anthropic models hosted on Bedrock.
type Client struct {
	api       InvokeAPI
	model     string
	maxTokens int
}

// NewClient loads the default AWS config for region and builds a Bedrock client.
func NewClient(ctx context.Context, region, model string) (*Client, error) {
	if strings.TrimSpace(region) == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPI(bedrockruntime.NewFromConfig(cfg), model), nil
}

// NewWithAPI wraps an existing Bedrock runtime implementation.
func NewWithAPI(api InvokeAPI, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Client{api: api, model: strings.TrimSpace(model), maxTokens: defaultMaxTokens}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []message `json:"messages"`
}

type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete invokes the model with a single user message and returns the first text block.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("bedrock client is not initialized")
	}
	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.maxTokens,
		Messages:         []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	started := time.Now()
	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke model: %w", err)
	}

	var parsed invokeResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return "", fmt.Errorf("bedrock response parse: %w", err)
	}

	fields := map[string]any{
		"provider":    "bedrock",
		"model":       c.model,
		"stop_reason": parsed.StopReason,
		"duration_ms": time.Since(started).Milliseconds(),
	}
	if parsed.Usage != nil {
		fields["input_tokens"] = parsed.Usage.InputTokens
		fields["output_tokens"] = parsed.Usage.OutputTokens
	}
	telemetry.Info("llm.response", fields)

	for _, block := range parsed.Content {
		if block.Type != "" && block.Type != "text" {
			continue
		}
		if text := strings.TrimSpace(block.Text); text != "" {
			return text, nil
		}
	}
	return "", errors.New("bedrock response missing text content")
}

var _ llm.Client = (*Client)(nil)
