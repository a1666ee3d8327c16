package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/ai"
	"github.com/spec-kit/roleforge-api/internal/config"
)

func newTestAIService(baseURL string) *AIService {
	cfg := config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		ImageModel:     "test-image-model",
		TimeoutSeconds: 5,
	}
	return NewAIService(cfg, ai.NewClient(cfg, zap.NewNop()), nil, nil, zap.NewNop())
}

func TestAIServiceGenerate(t *testing.T) {
	t.Run("backstory returns provider content", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"born in a storm"}}]}`))
		}))
		defer srv.Close()

		svc := newTestAIService(srv.URL)
		result, err := svc.GenerateBackstory(context.Background(), "user-1", "a dwarven cleric who lost her faith")
		if err != nil {
			t.Fatalf("GenerateBackstory: %v", err)
		}
		if result.Content != "born in a storm" {
			t.Errorf("Content = %q", result.Content)
		}
		if result.Cached {
			t.Error("first generation reported as cached")
		}
		if result.RequestID == "" {
			t.Error("missing request id")
		}
		if calls.Load() != 1 {
			t.Errorf("provider calls = %d, want 1", calls.Load())
		}
	})

	t.Run("provider failure maps to external service error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		svc := newTestAIService(srv.URL)
		_, err := svc.GenerateNPC(context.Background(), "user-1", "a shifty dockside fence")
		if status := domainErrStatus(t, err); status != 502 {
			t.Errorf("status = %d, want 502", status)
		}
	})

	t.Run("image generation returns url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/portrait.png"}]}`))
		}))
		defer srv.Close()

		svc := newTestAIService(srv.URL)
		result, err := svc.GenerateImage(context.Background(), "user-1", "an elven ranger portrait")
		if err != nil {
			t.Fatalf("GenerateImage: %v", err)
		}
		if result.ImageURL != "https://img.example/portrait.png" {
			t.Errorf("ImageURL = %q", result.ImageURL)
		}
		if result.Cached {
			t.Error("image generation must never be cached")
		}
	})
}
