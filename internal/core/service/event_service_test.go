package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

type stubEventRepo struct {
	insertErr error
	events    []domain.RatingEvent
	lastLimit int64
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.RatingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *stubEventRepo) ListByStore(_ context.Context, storeID string, limit int64) ([]domain.RatingEvent, error) {
	r.lastLimit = limit
	out := []domain.RatingEvent{}
	for _, e := range r.events {
		if e.StoreID == storeID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestRatingEventService_RecordAndHistory(t *testing.T) {
	stores := newStubStoreRepo()
	stores.seed(&domain.Store{ID: "s1"})
	repo := &stubEventRepo{}
	svc := NewRatingEventService(repo, stores, discardLogger)
	ctx := context.Background()

	base := time.Now()
	for i, action := range []domain.RatingAction{domain.RatingCreated, domain.RatingUpdated} {
		err := svc.Record(ctx, domain.RatingEvent{
			StoreID:    "s1",
			UserID:     "u1",
			Value:      i + 3,
			Action:     action,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	history, err := svc.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Action != domain.RatingUpdated {
		t.Fatalf("expected newest event first, got %+v", history)
	}
	if repo.lastLimit != historyLimit {
		t.Errorf("expected limit %d, got %d", historyLimit, repo.lastLimit)
	}
}

func TestRatingEventService_History_UnknownStore(t *testing.T) {
	svc := NewRatingEventService(&stubEventRepo{}, newStubStoreRepo(), discardLogger)

	if _, err := svc.History(context.Background(), "missing"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestRatingEventService_Record_Error(t *testing.T) {
	boom := errors.New("boom")
	svc := NewRatingEventService(&stubEventRepo{insertErr: boom}, newStubStoreRepo(), discardLogger)

	if err := svc.Record(context.Background(), domain.RatingEvent{StoreID: "s1"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}
