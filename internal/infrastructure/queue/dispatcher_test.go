package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/domain"
)

type stubActivityRepo struct {
	mu       sync.Mutex
	inserted []domain.ActivityEvent
	err      error
}

func (r *stubActivityRepo) InsertActivity(_ context.Context, e domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func (r *stubActivityRepo) events() []domain.ActivityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ActivityEvent(nil), r.inserted...)
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	jobs := []string{"a", "b", "c", "d"}
	for round := 0; round < 5; round++ {
		for _, j := range jobs {
			d.Publish(domain.ActivityEvent{Kind: domain.ActivityStatusChanged, JobID: j, Delta: int64(round)})
		}
	}
	d.Close()

	got := repo.events()
	if len(got) != len(jobs)*5 {
		t.Fatalf("expected %d events, got %d", len(jobs)*5, len(got))
	}

	// Per-job order is preserved.
	last := make(map[string]int64)
	for _, e := range got {
		if prev, ok := last[e.JobID]; ok && e.Delta <= prev {
			t.Errorf("job %s: event %d delivered after %d", e.JobID, e.Delta, prev)
		}
		last[e.JobID] = e.Delta
	}
}

func TestDispatcher_ShardIndexDeterministic(t *testing.T) {
	d := NewDispatcher(8, &stubActivityRepo{}, zerolog.Nop())

	for _, key := range []string{"", "job-1", "1700000000000000000-42"} {
		first := d.shardIndex(key)
		if first < 0 || first >= 8 {
			t.Fatalf("index out of range for %q: %d", key, first)
		}
		if again := d.shardIndex(key); again != first {
			t.Errorf("index for %q changed: %d then %d", key, first, again)
		}
	}
}

func TestDispatcher_UserEventsShardByUser(t *testing.T) {
	e := domain.ActivityEvent{Kind: domain.ActivityUserRegistered, UserID: "alice"}
	if got := shardKey(e); got != "alice" {
		t.Errorf("expected user id as shard key, got %q", got)
	}
	e.JobID = "job-9"
	if got := shardKey(e); got != "job-9" {
		t.Errorf("expected job id as shard key, got %q", got)
	}
}

func TestDispatcher_WriteFailureIsNonFatal(t *testing.T) {
	repo := &stubActivityRepo{err: errors.New("mongo unavailable")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, JobID: "j"})
	d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobCompleted, JobID: "j"})
	d.Close()

	if n := len(repo.events()); n != 0 {
		t.Errorf("expected no stored events, got %d", n)
	}
}

func TestDispatcher_PublishAfterCloseDrops(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close() // second close is a no-op

	d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, JobID: "late"})

	if n := len(repo.events()); n != 0 {
		t.Errorf("expected event to be dropped, got %d stored", n)
	}
}

func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	// Workers not started: the single shard fills up.

	for i := 0; i < channelBuffer+10; i++ {
		d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, JobID: "j"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Errorf("expected %d queued events, got %d", channelBuffer, got)
	}
}
