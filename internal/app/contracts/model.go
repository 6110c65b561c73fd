package contracts

import (
	"context"
	"io"
)

// ModelMessage is one turn handed to the conversational model. Role is
// "system", "user" or "assistant".
type ModelMessage struct {
	Role    string
	Content string
}

// ModelClient abstracts the upstream conversational API: chat completion,
// short summarisation for session titles, audio transcription and
// image attachment analysis.
type ModelClient interface {
	Chat(ctx context.Context, messages []ModelMessage) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	Transcribe(ctx context.Context, fileName string, reader io.Reader) (string, error)
	AnalyzeImage(ctx context.Context, prompt string, imageData []byte, contentType string) (string, error)
}
