//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "codelabs-test:"})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	n, err := c.Clear(ctx)
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v", n, err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}
