package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/ai"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, ai.Provider) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	return server, provider
}

func TestSendMessage(t *testing.T) {
	var gotRequest chatCompletionsRequest

	_, provider := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"thought\":\"done\",\"final_answer\":\"4\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})

	temp := float32(0.2)
	response, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Model: "gpt-4o-mini",
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: "You are an agent."},
			{Role: ai.RoleUser, Content: "Task: what is 2+2?"},
		},
		ResponseFormat:   &ai.ResponseFormat{Type: "json_object"},
		GenerationConfig: &ai.GenerationConfig{Temperature: temp},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Content != `{"thought":"done","final_answer":"4"}` {
		t.Errorf("unexpected content %q", response.Content)
	}
	if response.FinishReason != "stop" {
		t.Errorf("unexpected finish reason %q", response.FinishReason)
	}
	if response.Usage == nil || response.Usage.TotalTokens != 15 {
		t.Errorf("unexpected usage %+v", response.Usage)
	}

	if len(gotRequest.Messages) != 2 || gotRequest.Messages[0].Role != "system" {
		t.Errorf("conversation not forwarded verbatim: %+v", gotRequest.Messages)
	}
	if gotRequest.ResponseFormat == nil || gotRequest.ResponseFormat.Type != "json_object" {
		t.Errorf("response format not forwarded: %+v", gotRequest.ResponseFormat)
	}
	if gotRequest.Temperature == nil || *gotRequest.Temperature != temp {
		t.Errorf("temperature not forwarded: %+v", gotRequest.Temperature)
	}
}

func TestSendMessage_APIError(t *testing.T) {
	_, provider := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	})

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestSendMessage_NoChoices(t *testing.T) {
	_, provider := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "x", "choices": []}`))
	})

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
