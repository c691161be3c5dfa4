package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// baseURL returns the catalog service base URL, overridable with CATALOG_URL.
func baseURL() string {
	if u := os.Getenv("CATALOG_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}

// skipIfNotRunning performs a quick liveness check against the service.
// If it is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("catalog service not reachable (Docker not running?): %v", err)
	}
	resp.Body.Close()
}

// waitForSeeding polls /health until the catalog reports a non-zero product
// count, giving the background seeder time to finish on a fresh stack.
func waitForSeeding(t *testing.T, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		status, body := httpGet(t, baseURL()+"/health")
		if status == http.StatusOK {
			if count, ok := body["products_count"].(float64); ok && count > 0 {
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Skip("catalog not seeded within timeout")
}

// httpGet performs an HTTP GET request and returns the status code and
// decoded JSON body.
func httpGet(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response from %s: %v", url, err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode response from %s: %v\nbody: %s", url, err, data)
	}
	return resp.StatusCode, body
}

// queryURL builds a /products URL with the given query string.
func queryURL(path, query string) string {
	if query == "" {
		return baseURL() + path
	}
	return fmt.Sprintf("%s%s?%s", baseURL(), path, query)
}
