// File: internal/services/assistant/openai_provider.go
package assistant

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to the inference service over its OpenAI-compatible
// chat completion endpoint.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Ask sends the prior transcript plus the current question and returns the
// answer text. The call is bounded by the configured timeout and retried on
// transient failure; whatever still fails surfaces as ErrUnavailable.
func (p *OpenAIProvider) Ask(ctx context.Context, question string, history []Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	var answer string
	err := retryWithDelay(ctx, p.config.MaxRetries, p.config.RetryDelay, func(ctx context.Context) error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       p.config.Model,
			Messages:    messages,
			Temperature: p.config.Temperature,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return errors.New("empty completion response")
		}
		answer = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", unavailable("completion", err)
	}
	return answer, nil
}

// HealthCheck verifies the endpoint is reachable and the key is accepted.
func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	if _, err := p.client.ListModels(ctx); err != nil {
		return unavailable("health check", err)
	}
	return nil
}
