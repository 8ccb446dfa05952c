package textgen

import "errors"

var (
	// ErrMissingAPIKey means OPENAI_API_KEY was not supplied.
	ErrMissingAPIKey = errors.New("textgen: OPENAI_API_KEY is required")

	// ErrUnavailable wraps transient upstream failures (timeouts, 429, 5xx).
	// Callers should surface a retryable error and persist nothing.
	ErrUnavailable = errors.New("textgen: service unavailable")

	// ErrEmptyCompletion means the API answered 200 with no usable content.
	ErrEmptyCompletion = errors.New("textgen: empty completion")
)

// chatMessage is one role-tagged entry of a chat-completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
