package quiz

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := NewRedisCache(context.Background(), "redis://"+mr.Addr(), time.Minute)
	if err != nil {
		t.Fatalf("new redis cache: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, 7); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	view := gameView{
		Title: "Quiz1",
		Questions: []questionView{
			{ID: 3, Index: 0, Content: "2+2?", Options: []json.RawMessage{json.RawMessage(`"3"`), json.RawMessage(`4`)}},
		},
	}
	if err := cache.Set(ctx, 7, view); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := cache.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, view) {
		t.Fatalf("expected %#v, got %#v", view, got)
	}

	if !mr.Exists("quiz:game:7") {
		t.Fatalf("expected key quiz:game:7 to exist")
	}
	if ttl := mr.TTL("quiz:game:7"); ttl != time.Minute {
		t.Fatalf("expected ttl %s, got %s", time.Minute, ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, err := cache.Get(ctx, 7); err != nil || ok {
		t.Fatalf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}

func TestRedisCacheRejectsCorruptEntry(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	if err := mr.Set("quiz:game:9", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok, err := cache.Get(context.Background(), 9); err == nil || ok {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisCache(ctx, "redis://"+addr, time.Minute); err == nil {
		t.Fatalf("expected ping failure for stopped server")
	}
}

func TestGetGamePopulatesRedis(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	_, ts := newTestServer(t, cache)
	gameID := createGame(t, ts, quiz1())

	resp := doRequest(t, ts, http.MethodGet, gamePath(gameID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var first gameView
	if err := decodeInto(resp, &first); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !mr.Exists(gameCacheKey(gameID)) {
		t.Fatalf("expected %s to be cached", gameCacheKey(gameID))
	}

	resp = doRequest(t, ts, http.MethodGet, gamePath(gameID), nil)
	var second gameView
	if err := decodeInto(resp, &second); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected cached view to match, got %#v and %#v", first, second)
	}
}
