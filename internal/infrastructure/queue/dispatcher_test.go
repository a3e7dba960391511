package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

type recordingWriter struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	fail    bool
}

func (w *recordingWriter) Record(_ context.Context, e *domain.AuditLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("boom")
	}
	w.entries = append(w.entries, e)
	return nil
}

func TestDispatcher_DrainsOnStop(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(3, w, zerolog.Nop())
	d.Start()

	for i := 0; i < 50; i++ {
		if !d.Enqueue(&domain.AuditLog{ActorID: fmt.Sprintf("u%d", i%5), Action: "POST"}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if len(w.entries) != 50 {
		t.Fatalf("expected 50 written entries, got %d", len(w.entries))
	}
	if d.Enqueue(&domain.AuditLog{ActorID: "late"}) {
		t.Error("enqueue after Stop should be rejected")
	}
	if err := d.Stop(ctx); err != nil {
		t.Errorf("second Stop should be a no-op, got %v", err)
	}
}

func TestDispatcher_PreservesPerActorOrder(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(4, w, zerolog.Nop())
	d.Start()

	for i := 0; i < 20; i++ {
		d.Enqueue(&domain.AuditLog{ActorID: "alice", ResourceID: fmt.Sprint(i)})
	}
	_ = d.Stop(context.Background())

	for i, e := range w.entries {
		if e.ResourceID != fmt.Sprint(i) {
			t.Fatalf("entry %d out of order: %s", i, e.ResourceID)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, &recordingWriter{}, zerolog.Nop())
	drops := 0
	d.OnDrop(func() { drops++ })

	// not started: the single shard fills up
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(&domain.AuditLog{}) {
			t.Fatalf("enqueue %d rejected before buffer was full", i)
		}
	}
	if d.Enqueue(&domain.AuditLog{}) {
		t.Fatal("expected full shard to reject")
	}
	if drops != 1 || d.Pending() != channelBuffer {
		t.Errorf("drops=%d pending=%d", drops, d.Pending())
	}
}

func TestDispatcher_WriteErrorsDoNotStopWorkers(t *testing.T) {
	w := &recordingWriter{fail: true}
	d := NewDispatcher(1, w, zerolog.Nop())
	d.Start()
	d.Enqueue(&domain.AuditLog{})
	d.Enqueue(&domain.AuditLog{})
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
}
