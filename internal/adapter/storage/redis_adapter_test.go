package storage

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisAdapter_SetAndGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "invstrar-test:")

	// Setup
	client.Del(ctx, "invstrar-test:locations")

	if err := adapter.SetItem(ctx, "locations", `[{"id":"1"}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, found, err := adapter.GetItem(ctx, "locations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected key to be found")
	}
	if value != `[{"id":"1"}]` {
		t.Errorf("unexpected value %q", value)
	}

	// Verify the prefix is applied
	raw, _ := client.Get(ctx, "invstrar-test:locations").Result()
	if raw != value {
		t.Errorf("expected prefixed key to hold %q, got %q", value, raw)
	}
}

func TestRedisAdapter_GetMissing(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "invstrar-test:")

	client.Del(ctx, "invstrar-test:missing")

	_, found, err := adapter.GetItem(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected missing key")
	}
}

func TestRedisAdapter_RemoveItem(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "invstrar-test:")

	adapter.SetItem(ctx, "vendors", "[]")

	if err := adapter.RemoveItem(ctx, "vendors"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Removing twice is fine
	if err := adapter.RemoveItem(ctx, "vendors"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, found, _ := adapter.GetItem(ctx, "vendors")
	if found {
		t.Error("expected key to be removed")
	}
}

func TestRedisAdapter_ConcurrentWritesLastWins(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "invstrar-test:")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := adapter.SetItem(ctx, "meetings", "[]"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	value, found, err := adapter.GetItem(ctx, "meetings")
	if err != nil || !found || value != "[]" {
		t.Errorf("expected [] after concurrent writes, got %q found=%v err=%v", value, found, err)
	}
}
