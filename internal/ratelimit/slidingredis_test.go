package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T) (*miniredis.Miniredis, Limiter) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, Limiter{Client: client, Prefix: "rl:reports:"}
}

func TestAllowWithinWindow(t *testing.T) {
	_, limiter := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, "10.0.0.1", time.Minute, 3)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d should be within the limit", i)
		}
		if remaining != 3-(i+1) {
			t.Fatalf("request %d: expected remaining %d, got %d", i, 3-(i+1), remaining)
		}
	}
}

func TestAllowRejectsOverLimit(t *testing.T) {
	_, limiter := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, _, err := limiter.Allow(ctx, "10.0.0.1", time.Minute, 2); err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
	}
	allowed, remaining, _, err := limiter.Allow(ctx, "10.0.0.1", time.Minute, 2)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if allowed {
		t.Fatal("expected request over the limit to be rejected")
	}
	if remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", remaining)
	}
}

func TestAllowRecoversAfterWindow(t *testing.T) {
	mr, limiter := newTestLimiter(t)
	ctx := context.Background()
	window := 2 * time.Second

	if _, _, _, err := limiter.Allow(ctx, "10.0.0.1", window, 1); err != nil {
		t.Fatalf("allow: %v", err)
	}
	mr.FastForward(window)

	allowed, _, _, err := limiter.Allow(ctx, "10.0.0.1", window, 1)
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !allowed {
		t.Fatal("expected the window to have slid past the first request")
	}
}

func TestAllowDisabledWithoutClient(t *testing.T) {
	limiter := Limiter{}
	allowed, remaining, _, err := limiter.Allow(context.Background(), "10.0.0.1", time.Minute, 5)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed || remaining != 5 {
		t.Fatalf("expected enforcement disabled, got allowed=%v remaining=%d", allowed, remaining)
	}
}
