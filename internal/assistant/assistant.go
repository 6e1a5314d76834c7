package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kestrelhq/badgehunt/internal/badge"
	"github.com/kestrelhq/badgehunt/internal/config"
)

var (
	// ErrNoCredential means no API key is configured.
	ErrNoCredential = errors.New("assistant: no API key configured")
	// ErrNoImage means the image API returned no usable image data.
	ErrNoImage = errors.New("assistant: response contained no image")
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

const (
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Assistant wraps the OpenAI-compatible API for badge chat and image
// generation. It is grounded on the full catalog dataset so answers stay
// consistent with what the rest of the app shows.
type Assistant struct {
	client     *openai.Client
	chatModel  string
	imageModel string
	logger     *zap.Logger
}

// New builds an assistant from config. Without an API key the assistant
// still constructs but reports itself unconfigured; callers get
// ErrNoCredential on use instead of a nil-pointer surprise.
func New(cfg *config.Config, logger *zap.Logger) *Assistant {
	a := &Assistant{
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		logger:     logger,
	}

	if cfg.OpenAIAPIKey == "" {
		return a
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	a.client = openai.NewClientWithConfig(clientConfig)
	return a
}

// Configured reports whether an API key is available.
func (a *Assistant) Configured() bool {
	return a.client != nil
}

// Chat sends the conversation plus one new user message and streams the
// reply. The returned channel yields response fragments and is closed
// when the reply is complete or the stream fails.
func (a *Assistant) Chat(ctx context.Context, history []Message, userMessage string) (<-chan string, error) {
	if a.client == nil {
		return nil, ErrNoCredential
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: badge.SystemContext(),
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       a.chatModel,
		Messages:    messages,
		Temperature: 0.7,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start chat stream: %w", err)
	}

	responseChannel := make(chan string)
	go func() {
		defer close(responseChannel)
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				a.logger.Warn("chat stream interrupted", zap.Error(err))
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				responseChannel <- delta
			}
		}
	}()

	return responseChannel, nil
}

// GenerateBadgeImage creates a small illustrative image for a badge and
// returns it as a PNG data URI.
func (a *Assistant) GenerateBadgeImage(ctx context.Context, b *badge.Badge) (string, error) {
	if a.client == nil {
		return "", ErrNoCredential
	}

	prompt := fmt.Sprintf(
		"A flat, minimal hexagonal achievement badge icon for %q: %s. Bold colors, dark background, no text.",
		b.Name, b.Description)

	resp, err := a.client.CreateImage(ctx, openai.ImageRequest{
		Model:          a.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize256x256,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", ErrNoImage
	}

	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}
