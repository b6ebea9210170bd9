package agent

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client using the official openai-go SDK (chat
// completions). One instance per pipeline stage, each with its own sampling
// temperature, timeout and retry budget.
type OpenAIClient struct {
	model       string
	temperature float64
	opts        []option.RequestOption
}

func NewOpenAIClient(cfg *Settings, stage StageConfig) (*OpenAIClient, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(stage.Timeout),
		option.WithMaxRetries(stage.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{
		model:       cfg.Model,
		temperature: stage.Temperature,
		opts:        opts,
	}, nil
}

func (o *OpenAIClient) Invoke(ctx context.Context, system string, msgs []Message) (Content, error) {
	client := openai.NewClient(o.opts...)

	params := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
	}
	for _, m := range msgs {
		switch m.Role {
		case "assistant":
			params = append(params, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    params,
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}
	return Plain(resp.Choices[0].Message.Content), nil
}
