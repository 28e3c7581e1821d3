//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

// doJSON sends payload (if any) and decodes the JSON response body.
func doJSON(t *testing.T, method, path string, header http.Header, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", baseURL(), path), &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func expectError(t *testing.T, status int, body map[string]interface{}, want int) {
	t.Helper()
	if status != want {
		t.Fatalf("expected %d, got %d: %v", want, status, body)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if code, _ := body["error"].(float64); int(code) != want {
		t.Fatalf("expected error=%d, got %v", want, body["error"])
	}
}

func createQuestion(t *testing.T, text string, category int) int {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, "/questions", nil, map[string]interface{}{
		"question":   text,
		"answer":     "integration",
		"category":   category,
		"difficulty": 1,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: status %d: %v", status, body)
	}
	id, ok := body["created"].(float64)
	if !ok {
		t.Fatalf("create question: missing id in %v", body)
	}
	return int(id)
}

func deleteQuestion(t *testing.T, id int) {
	t.Helper()
	status, body := doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, nil)
	if status != http.StatusOK {
		t.Fatalf("delete question %d: status %d: %v", id, status, body)
	}
}
