package textgen

import (
	"log"
	"time"
)

// LogRequest logs a completion request being made.
func LogRequest(model string, promptChars int) {
	log.Printf("[textgen] POST chat/completions model=%s prompt_chars=%d", model, promptChars)
}

// LogResponse logs a completion response received.
func LogResponse(statusCode int, duration time.Duration, outputChars int) {
	log.Printf("[textgen] response status=%d duration=%dms output_chars=%d",
		statusCode, duration.Milliseconds(), outputChars)
}

// LogError logs an error from a completion call.
func LogError(operation string, err error) {
	log.Printf("[textgen] %s error: %v", operation, err)
}
