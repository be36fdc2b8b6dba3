package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	allowed, count, err := client.FixedWindowAllow(ctx, "login:ip:abc", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected allowed on first request")
	}
	if count != 1 {
		t.Fatalf("expected counter 1 got %d", count)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expected expire for first increment")
	}
	if mock.expireCalls[0].key != "oms:rate_limit:login:ip:abc" || mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("unexpected expire call %+v", mock.expireCalls[0])
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "login:ip:abc", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 2 {
		t.Fatalf("unexpected second call state allowed=%v count=%d", allowed, count)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expire should not be set again")
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "login:ip:abc", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("expected limit reached")
	}
}

func TestFixedWindowAllowPropagatesErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.incrErr = errors.New("connection refused")
	client := &Client{store: mock}

	allowed, _, err := client.FixedWindowAllow(context.Background(), "scope", 5, time.Minute)
	if err == nil {
		t.Fatal("expected error")
	}
	if allowed {
		t.Fatal("expected not allowed on error")
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from nil client ping")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil client: %v", err)
	}
}

func TestNewReturnsNilWhenDisabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when redis is not configured")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:          "redis://:pw@localhost:6380/2",
		PoolSize:     7,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("unexpected parsed options %+v", opts)
	}
	if opts.PoolSize != 7 || opts.DialTimeout != 2*time.Second {
		t.Fatalf("pool defaults not applied: %+v", opts)
	}

	if _, err := optionsFromConfig(config.RedisConfig{URL: "://bad"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("login:phone:xyz"); got != "oms:rate_limit:login:phone:xyz" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
	if got := buildKey("a", " ", "b"); got != "oms:a:b" {
		t.Fatalf("unexpected key %q", got)
	}
}

type mockCmdable struct {
	incr        map[string]int64
	incrErr     error
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{incr: make(map[string]int64)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}
