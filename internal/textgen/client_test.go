package textgen_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getbelge/GB-Backend/internal/textgen"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *textgen.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return textgen.NewClient(textgen.Config{
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
		BaseURL: server.URL,
		Lang:    "tr",
		Timeout: 2 * time.Second,
	})
}

func TestComplete_Success(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"generated text"}}]}`))
	})

	text, err := client.Complete(context.Background(), "system prompt", "user content")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "generated text" {
		t.Errorf("expected first choice content, got %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestComplete_ServerErrorIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, textgen.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for a 500, got %v", err)
	}
}

func TestComplete_RateLimitedIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, textgen.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for a 429, got %v", err)
	}
}

func TestComplete_ClientErrorIsPermanent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	})

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected an error for a 400")
	}
	if errors.Is(err, textgen.ErrUnavailable) {
		t.Errorf("a 400 must not be classified as transient: %v", err)
	}
}

func TestComplete_EmptyCompletion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, textgen.ErrEmptyCompletion) {
		t.Errorf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestComplete_TimeoutIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"choices":[{"message":{"content":"too late"}}]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "s", "u")
	if !errors.Is(err, textgen.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable on timeout, got %v", err)
	}
}
