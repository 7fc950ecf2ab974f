package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"quizboard/internal/config"
	"quizboard/internal/testutil"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T, cache gameCache) (*Server, *httptest.Server) {
	t.Helper()
	return newTestServerWithConfig(t, cache, config.Default())
}

func newTestServerWithConfig(t *testing.T, cache gameCache, cfg config.Config) (*Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := New(testutil.SetupTestDB(t), cache, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func createGame(t *testing.T, ts *httptest.Server, payload any) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/new", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	id, ok := body["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected positive game id, got %#v", body["id"])
	}
	return uint(id)
}

func gamePath(id uint, rest ...string) string {
	path := "/game/" + strconv.FormatUint(uint64(id), 10)
	for _, part := range rest {
		path += "/" + part
	}
	return path
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	body := bytes.NewReader(nil)
	if payload != nil {
		var data []byte
		if raw, ok := payload.(string); ok {
			data = []byte(raw)
		} else {
			encoded, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("marshal payload: %v", err)
			}
			data = encoded
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func fetchCount(t *testing.T, ts *httptest.Server, gameID uint, index int) int {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, gamePath(gameID, strconv.Itoa(index)), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	count, ok := body["count"].(float64)
	if !ok {
		t.Fatalf("expected numeric count, got %#v", body["count"])
	}
	return int(count)
}

type memoryCache struct {
	mu    sync.Mutex
	views map[uint]gameView
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{views: make(map[uint]gameView)}
}

func (c *memoryCache) Get(_ context.Context, gameID uint) (gameView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	view, ok := c.views[gameID]
	if ok {
		c.hits++
	}
	return view, ok, nil
}

func (c *memoryCache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func (c *memoryCache) Set(_ context.Context, gameID uint, view gameView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[gameID] = view
	return nil
}

func decodeInto(resp *http.Response, dest any) error {
	return json.NewDecoder(resp.Body).Decode(dest)
}
