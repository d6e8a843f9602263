package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-api/internal/api/metrics"
	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes rating events to a fixed set of workers using consistent
// hashing on the store id, so events for one store are recorded in order.
// Publishing never blocks the request path: a full worker queue drops the
// event.
type Dispatcher struct {
	workers []chan domain.RatingEvent
	service ports.RatingEventService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.RatingEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.RatingEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.RatingEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Stop has drained
// their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its store.
func (d *Dispatcher) Publish(event domain.RatingEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.EventsErrorsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("store_id", event.StoreID).Msg("rating event dropped: dispatcher stopped")
		return
	}

	idx := d.shardIndex(event.StoreID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsErrorsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("store_id", event.StoreID).
			Int("worker_id", idx).
			Msg("rating event dropped: worker queue full")
	}
}

// Stop closes the worker queues and waits for pending events to be recorded.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a store id deterministically to a worker index.
func (d *Dispatcher) shardIndex(storeID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(storeID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.RatingEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for event := range ch {
		metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.process(ctx, id, event)
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.RatingEvent) {
	start := time.Now()

	// Events drained by Stop are still recorded after ctx is cancelled.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := d.service.Record(recordCtx, event); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("record_failed").Inc()
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("store_id", event.StoreID).
			Int("worker_id", id).
			Msg("rating event processing failed")
		return
	}

	metrics.EventsProcessedTotal.WithLabelValues(string(event.Action)).Inc()
	metrics.EventProcessingDuration.WithLabelValues(string(event.Action)).Observe(time.Since(start).Seconds())
}
