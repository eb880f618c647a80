package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.SetJSON(ctx, "dashboard:stats", map[string]int{"orders": 3}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var got map[string]int
	hit, err := store.GetJSON(ctx, "dashboard:stats", &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if got["orders"] != 3 {
		t.Fatalf("unexpected value: %+v", got)
	}

	now = now.Add(time.Minute)
	hit, err = store.GetJSON(ctx, "dashboard:stats", &got)
	if err != nil || hit {
		t.Fatalf("expected expiry miss, got hit=%v err=%v", hit, err)
	}
}

func TestMemoryStoreDel(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.SetJSON(ctx, "a", 1, 0)
	_ = store.SetJSON(ctx, "b", 2, 0)

	if err := store.Del(ctx, "a", "b"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	var v int
	if hit, _ := store.GetJSON(ctx, "a", &v); hit {
		t.Fatalf("expected a removed")
	}
}

func TestDisabledRedisHelpersAreNoop(t *testing.T) {
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init disabled failed: %v", err)
	}
	ctx := context.Background()
	if err := SetJSON(ctx, "k", 1, time.Second); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	var v int
	hit, err := GetJSON(ctx, "k", &v)
	if err != nil || hit {
		t.Fatalf("get should miss, hit=%v err=%v", hit, err)
	}
	if _, ok := DefaultStore().(*MemoryStore); !ok {
		t.Fatalf("expected memory store when redis disabled")
	}
	if got := BuildKey("auth:user:1"); got != "tw:auth:user:1" {
		t.Fatalf("unexpected key: %s", got)
	}
}
