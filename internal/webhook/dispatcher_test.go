package webhook

import (
	"context"
	"sync"
	"testing"
	"time"

	booksync "github.com/smallbiznis/booksync/internal/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type syncerStub struct {
	mu    sync.Mutex
	calls []string
}

func (s *syncerStub) SyncKindByID(_ context.Context, kind booksync.Kind, qbID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, string(kind)+":"+qbID)
	return nil
}

func (s *syncerStub) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func TestDispatcherRoutesTasks(t *testing.T) {
	syncer := &syncerStub{}
	d := NewDispatcher(zap.NewNop(), syncer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	assert.True(t, d.Enqueue(Task{DeliveryID: "d1", Entity: "Customer", QBID: "9", Operation: "Update"}))
	assert.True(t, d.Enqueue(Task{DeliveryID: "d1", Entity: "Invoice", QBID: "130", Operation: "Create"}))
	// Unknown entities are logged and dropped, never dispatched.
	assert.True(t, d.Enqueue(Task{DeliveryID: "d1", Entity: "Widget", QBID: "1"}))

	require.Eventually(t, func() bool {
		return len(syncer.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)

	calls := syncer.snapshot()
	assert.Equal(t, []string{"Customer:9", "Invoice:130"}, calls)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	// No worker draining the queue; fill it to the brim and one more.
	d := NewDispatcher(zap.NewNop(), &syncerStub{}, nil)

	for i := 0; i < defaultQueueSize; i++ {
		require.True(t, d.Enqueue(Task{Entity: "Customer", QBID: "x"}))
	}
	assert.False(t, d.Enqueue(Task{Entity: "Customer", QBID: "overflow"}))
}
