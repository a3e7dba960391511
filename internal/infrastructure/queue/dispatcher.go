package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// AuditWriter persists one audit entry.
type AuditWriter interface {
	Record(ctx context.Context, entry *domain.AuditLog) error
}

// Dispatcher writes audit entries off the request path. Entries are sharded by
// actor so one user's entries are written in order.
type Dispatcher struct {
	workers []chan *domain.AuditLog
	writer  AuditWriter
	log     zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped func()
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, writer AuditWriter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.AuditLog, numWorkers),
		writer:  writer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.AuditLog, channelBuffer)
	}
	return d
}

// OnDrop registers a callback for entries rejected because a shard was full.
func (d *Dispatcher) OnDrop(fn func()) { d.dropped = fn }

// Start launches all worker goroutines.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Enqueue hands an entry to its shard without blocking. It reports false when
// the dispatcher is stopped or the shard buffer is full.
func (d *Dispatcher) Enqueue(entry *domain.AuditLog) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.workers[d.shardIndex(entry.ActorID)] <- entry:
		return true
	default:
		d.log.Warn().Str("action", entry.Action).Str("resource", entry.Resource).Msg("audit queue full, entry dropped")
		if d.dropped != nil {
			d.dropped()
		}
		return false
	}
}

// Pending returns the number of queued entries across shards.
func (d *Dispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// Stop closes the queues and waits until queued entries are written or ctx
// expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan *domain.AuditLog) {
	defer d.wg.Done()
	for entry := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.writer.Record(ctx, entry); err != nil {
			d.log.Error().Err(err).
				Str("action", entry.Action).
				Str("resource", entry.Resource).
				Int("worker_id", id).
				Msg("audit write failed")
		}
		cancel()
	}
}
