package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, "post_job"), mr
}

func TestIdempotencyStore_KeyIsScoped(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	jobs := NewIdempotencyStore(client, "post_job")
	other := NewIdempotencyStore(client, "other")

	if got := jobs.key("abc"); got != "idem:post_job:abc" {
		t.Errorf("unexpected key: %q", got)
	}
	if jobs.key("abc") == other.key("abc") {
		t.Error("different scopes must not share keys")
	}
}

func TestIdempotencyStore_FirstClaimWins(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if _, claimed, err := s.Claim(ctx, "k", time.Hour); err != nil || !claimed {
		t.Fatalf("expected first claim to succeed, claimed=%v err=%v", claimed, err)
	}
	if got, _ := mr.Get("idem:post_job:k"); got != pendingMarker {
		t.Errorf("expected pending marker in redis, got %q", got)
	}

	stored, claimed, err := s.Claim(ctx, "k", time.Hour)
	if err != nil || claimed || stored != "" {
		t.Fatalf("expected pending claim, got stored=%q claimed=%v err=%v", stored, claimed, err)
	}
}

func TestIdempotencyStore_LoserGetsStoredValue(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	_, _, _ = s.Claim(ctx, "k", time.Hour)
	if err := s.Complete(ctx, "k", "1700000000-1", time.Hour); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stored, claimed, err := s.Claim(ctx, "k", time.Hour)
	if err != nil || claimed || stored != "1700000000-1" {
		t.Fatalf("expected replay value, got stored=%q claimed=%v err=%v", stored, claimed, err)
	}
	if ttl := mr.TTL("idem:post_job:k"); ttl != time.Hour {
		t.Errorf("expected ttl to be kept on complete, got %v", ttl)
	}
}

func TestIdempotencyStore_ClaimExpires(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	_, _, _ = s.Claim(ctx, "k", time.Minute)
	_ = s.Complete(ctx, "k", "1700000000-1", time.Minute)
	mr.FastForward(time.Minute + time.Second)

	stored, claimed, err := s.Claim(ctx, "k", time.Minute)
	if err != nil || !claimed || stored != "" {
		t.Fatalf("expected expired key to be claimable, got stored=%q claimed=%v err=%v", stored, claimed, err)
	}
}

func TestIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	_, _, _ = s.Claim(ctx, "k", time.Hour)
	if err := s.Release(ctx, "k"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists("idem:post_job:k") {
		t.Fatal("expected key to be deleted")
	}
	if _, claimed, _ := s.Claim(ctx, "k", time.Hour); !claimed {
		t.Error("expected key to be claimable after release")
	}
}

func TestIdempotencyStore_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const callers = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, claimed, err := s.Claim(ctx, "k", time.Hour)
			if err != nil {
				t.Errorf("claim: %v", err)
				return
			}
			if claimed {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly one winning claim, got %d", wins)
	}
}

// vanishingCmdable loses the SETNX race once and then finds the key gone, the
// way a key that expires between SETNX and GET behaves.
type vanishingCmdable struct {
	redis.Cmdable
	setNXCalls int
}

func (c *vanishingCmdable) SetNX(ctx context.Context, _ string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	c.setNXCalls++
	return redis.NewBoolResult(c.setNXCalls > 1, nil)
}

func (c *vanishingCmdable) Get(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func TestIdempotencyStore_ClaimRetriesWhenKeyExpiresMidway(t *testing.T) {
	client := &vanishingCmdable{}
	s := NewIdempotencyStore(client, "post_job")

	_, claimed, err := s.Claim(context.Background(), "k", time.Hour)
	if err != nil || !claimed {
		t.Fatalf("expected retry to claim the key, claimed=%v err=%v", claimed, err)
	}
	if client.setNXCalls != 2 {
		t.Errorf("expected 2 SETNX calls, got %d", client.setNXCalls)
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Error("expected connect to fail once the server is gone")
	}
}
