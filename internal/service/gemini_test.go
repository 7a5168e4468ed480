package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftme/internal/config"
)

func testGeminiClient(serverURL string) *GeminiClient {
	return NewGeminiClient(&config.GeminiConfig{
		APIKey:  "test-key",
		APIBase: serverURL,
		Model:   "gemini-2.5-flash",
		Timeout: 5,
		Enabled: true,
	})
}

func geminiReply(texts ...string) map[string]interface{} {
	parts := []map[string]string{}
	for _, t := range texts {
		parts = append(parts, map[string]string{"text": t})
	}
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": parts}},
		},
	}
}

func TestGeminiAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("path = %s, want /models/gemini-2.5-flash:generateContent", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q, want test-key", got)
		}

		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || req.Contents[0].Parts[0].Text != "xin chào" {
			t.Errorf("request contents = %+v, want single part with the prompt", req.Contents)
		}

		json.NewEncoder(w).Encode(geminiReply("Chào bạn!"))
	}))
	defer server.Close()

	client := testGeminiClient(server.URL)
	reply, err := client.Ask(context.Background(), "xin chào")
	if err != nil {
		t.Fatalf("Ask() err = %v", err)
	}
	if reply != "Chào bạn!" {
		t.Errorf("reply = %q, want Chào bạn!", reply)
	}
}

func TestGeminiAskConcatenatesParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiReply("phần một ", "phần hai"))
	}))
	defer server.Close()

	client := testGeminiClient(server.URL)
	reply, err := client.Ask(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Ask() err = %v", err)
	}
	if reply != "phần một phần hai" {
		t.Errorf("reply = %q, want concatenated parts", reply)
	}
}

func TestGeminiAskEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := testGeminiClient(server.URL)
	_, err := client.Ask(context.Background(), "prompt")
	if !errors.Is(err, ErrOracleEmptyResponse) {
		t.Errorf("err = %v, want ErrOracleEmptyResponse", err)
	}
}

func TestGeminiAskAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testGeminiClient(server.URL)
	_, err := client.Ask(context.Background(), "prompt")
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("err = %v, want ErrOracleUnavailable", err)
	}
}

func TestGeminiAskServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := testGeminiClient(server.URL)
	_, err := client.Ask(context.Background(), "prompt")
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("err = %v, want ErrOracleUnavailable", err)
	}
}

func TestGeminiAskDisabled(t *testing.T) {
	client := NewGeminiClient(&config.GeminiConfig{Enabled: false})

	_, err := client.Ask(context.Background(), "prompt")
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("err = %v, want ErrOracleUnavailable when no API key is configured", err)
	}
}
