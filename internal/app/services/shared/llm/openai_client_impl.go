package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/pkg/exceptions"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

type openAIClient struct {
	client          *openai.Client
	chatModel       string
	transcribeModel string
	// limiter throttles outgoing calls so one busy practitioner cannot
	// exhaust the upstream quota for everyone.
	limiter *rate.Limiter
}

func NewOpenAIClient(modelConfig config.AppModel) contracts.ModelClient {
	clientConfig := openai.DefaultConfig(modelConfig.APIKey)
	if modelConfig.BaseUrl != "" {
		clientConfig.BaseURL = modelConfig.BaseUrl
	}

	requestsPerSecond := modelConfig.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	return &openAIClient{
		client:          openai.NewClientWithConfig(clientConfig),
		chatModel:       modelConfig.ChatModel,
		transcribeModel: modelConfig.TranscribeModel,
		limiter:         rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

func (c *openAIClient) Chat(ctx context.Context, messages []contracts.ModelMessage) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		role := message.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{Role: role, Content: message.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    chatMessages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", exceptions.ErrModelEmptyCompletion(nil)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Summarize(ctx context.Context, text string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Summarize the following into a short conversation title, at most six words, no quotes:"},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", exceptions.ErrModelEmptyCompletion(nil)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Transcribe(ctx context.Context, fileName string, reader io.Reader) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: fileName,
		Reader:   reader,
	})
	if err != nil {
		return "", exceptions.ErrModelTranscription(err)
	}
	return resp.Text, nil
}

func (c *openAIClient) AnalyzeImage(ctx context.Context, prompt string, imageData []byte, contentType string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	imageURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(imageData))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", exceptions.ErrModelEmptyCompletion(nil)
	}
	return resp.Choices[0].Message.Content, nil
}
