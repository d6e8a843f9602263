package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-api/internal/core/domain"
)

type recordingService struct {
	mu      sync.Mutex
	byStore map[string][]int
	block   chan struct{}
	err     error
}

func newRecordingService() *recordingService {
	return &recordingService{byStore: make(map[string][]int)}
}

func (s *recordingService) Record(_ context.Context, e domain.RatingEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byStore[e.StoreID] = append(s.byStore[e.StoreID], e.Value)
	return s.err
}

func (s *recordingService) History(context.Context, string) ([]domain.RatingEvent, error) {
	return nil, nil
}

func (s *recordingService) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.byStore {
		n += len(v)
	}
	return n
}

func TestDispatcher_PreservesPerStoreOrder(t *testing.T) {
	svc := newRecordingService()
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 100; i++ {
		d.Publish(domain.RatingEvent{StoreID: fmt.Sprintf("store-%d", i%5), Value: i})
	}
	d.Stop()

	if got := svc.total(); got != 100 {
		t.Fatalf("expected 100 recorded events after Stop, got %d", got)
	}
	for store, values := range svc.byStore {
		for i := 1; i < len(values); i++ {
			if values[i] < values[i-1] {
				t.Fatalf("%s: events out of order: %v", store, values)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, newRecordingService(), zerolog.Nop())

	first := d.shardIndex("store-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("store-42"); got != first {
			t.Fatalf("shard index changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	svc := newRecordingService()
	svc.block = make(chan struct{})
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	// One event is held by the blocked worker; the rest fill the buffer.
	for i := 0; i < channelBuffer+10; i++ {
		d.Publish(domain.RatingEvent{StoreID: "s1", Value: i})
	}
	close(svc.block)
	d.Stop()

	got := svc.total()
	if got > channelBuffer+1 {
		t.Fatalf("expected overflow to be dropped, recorded %d", got)
	}
	if got < channelBuffer {
		t.Fatalf("expected buffered events to be recorded, got %d", got)
	}
}

func TestDispatcher_PublishAfterStop(t *testing.T) {
	svc := newRecordingService()
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Publish(domain.RatingEvent{StoreID: "s1", Value: 1})
	if svc.total() != 0 {
		t.Fatal("events published after Stop must be dropped")
	}
}

func TestDispatcher_RecordErrorsDoNotStopWorker(t *testing.T) {
	svc := newRecordingService()
	svc.err = errors.New("boom")
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(domain.RatingEvent{StoreID: "s1", Value: 1})
	d.Publish(domain.RatingEvent{StoreID: "s1", Value: 2})
	d.Stop()

	if svc.total() != 2 {
		t.Fatalf("expected both events attempted, got %d", svc.total())
	}
}
