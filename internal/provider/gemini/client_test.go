package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnalyzeLabelSendsImageAndPrompt(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("missing api key header")
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 || parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/png" {
			t.Errorf("unexpected parts: %+v", parts)
		} else if parts[0].InlineData.Data != base64.StdEncoding.EncodeToString([]byte("png-bytes")) {
			t.Errorf("unexpected image payload")
		}
		if len(parts) == 2 && parts[1].Text != "read it" {
			t.Errorf("unexpected prompt %q", parts[1].Text)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"calories\": "},{"text":"120}"}]}}]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, APIKey: "secret", Prompt: "read it", HTTPClient: ts.Client()}
	text, err := c.AnalyzeLabel(context.Background(), []byte("png-bytes"), "image/png", "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("analyze label: %v", err)
	}
	if text != `{"calories": 120}` {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestAnalyzeLabelReportsAPIError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, APIKey: "bad", HTTPClient: ts.Client()}
	_, err := c.AnalyzeLabel(context.Background(), []byte("x"), "image/png", "gemini-2.5-flash")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestAnalyzeLabelNoCandidates(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, APIKey: "k", HTTPClient: ts.Client()}
	if _, err := c.AnalyzeLabel(context.Background(), []byte("x"), "", "m"); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
}

func TestAnalyzeLabelRequiresKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if _, err := c.AnalyzeLabel(context.Background(), []byte("x"), "image/png", "m"); err == nil {
		t.Fatalf("expected missing key error")
	}
}
