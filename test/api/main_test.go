package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL      = "http://localhost:8003"
	adminToken   string
	managerToken string
	techToken    string
)

// TestResponse wraps a decoded API response for assertions.
type TestResponse struct {
	StatusCode int
	Body       map[string]interface{}
	Raw        string
}

func (r TestResponse) GetString(key string) string {
	if v, ok := r.Body[key].(string); ok {
		return v
	}
	return ""
}

func (r TestResponse) Data() map[string]interface{} {
	if v, ok := r.Body["data"].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func (r TestResponse) DataList() []interface{} {
	if v, ok := r.Body["data"].([]interface{}); ok {
		return v
	}
	return nil
}

func checkAPIServer() error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return fmt.Errorf("API server not reachable: %v", err)
	}
	defer resp.Body.Close()
	return nil
}

func TestMain(m *testing.M) {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		baseURL = url
	}

	if err := checkAPIServer(); err != nil {
		fmt.Printf("Skipping API tests: %v\nStart the server and re-run, or set API_BASE_URL.\n", err)
		os.Exit(0)
	}

	setupAuth()
	os.Exit(m.Run())
}

func setupAuth() {
	adminToken = login("admin", "admin123")
	managerToken = login("manager", "manager123")
	techToken = login("tech1", "tech123")
}

func login(username, password string) string {
	resp := makeRequest("POST", "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Failed to login as %s: %s\n", username, resp.Raw)
		os.Exit(1)
	}
	token := resp.GetString("access_token")
	if token == "" {
		fmt.Printf("No access token in login response for %s\n", username)
		os.Exit(1)
	}
	return token
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return TestResponse{Raw: err.Error()}
		}
	}

	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		return TestResponse{Raw: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	response, err := client.Do(req)
	if err != nil {
		return TestResponse{Raw: err.Error()}
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return TestResponse{StatusCode: response.StatusCode, Raw: err.Error()}
	}

	result := TestResponse{StatusCode: response.StatusCode, Raw: string(respBody)}
	if len(respBody) > 0 {
		var decoded map[string]interface{}
		if err := json.Unmarshal(respBody, &decoded); err == nil {
			result.Body = decoded
		}
	}
	return result
}
