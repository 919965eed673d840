package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_Generate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "  A short dialogue.  ", Done: true})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "llama3.1")
	text, err := client.Generate(context.Background(), "write a dialogue", GenOptions{Temperature: 0.7, MaxTokens: 800})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "A short dialogue." {
		t.Errorf("Generate() = %q, want trimmed response", text)
	}
	if got.Model != "llama3.1" || got.Prompt != "write a dialogue" || got.Stream {
		t.Errorf("request = %+v", got)
	}
	if got.Options.Temperature != 0.7 || got.Options.NumPredict != 800 {
		t.Errorf("request options = %+v", got.Options)
	}
}

func TestHTTPClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "missing")
	_, err := client.Generate(context.Background(), "prompt", GenOptions{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Generate() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	if apiErr.HTTPStatus() != http.StatusNotFound {
		t.Errorf("HTTPStatus() = %d, want 404", apiErr.HTTPStatus())
	}
}

func TestHTTPClient_Generate_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp generateResponse
	}{
		{"blank text", generateResponse{Response: "   ", Done: true}},
		{"not done", generateResponse{Response: "partial", Done: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.resp)
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, "llama3.1")
			_, err := client.Generate(context.Background(), "prompt", GenOptions{})
			if !errors.Is(err, ErrEmptyResponse) {
				t.Errorf("Generate() error = %v, want ErrEmptyResponse", err)
			}
		})
	}
}

func TestHTTPClient_Generate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(server.URL, "llama3.1")
	_, err := client.Generate(context.Background(), "prompt", GenOptions{})
	if err == nil {
		t.Fatal("Generate() error = nil, want transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure classified as *APIError: %v", err)
	}
}
