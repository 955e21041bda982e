package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordAsync_PersistsInBackground(t *testing.T) {
	persisted := make(chan *domain.EntryLog, 1)
	repo := &MockEntryLogRepository{
		CreateFunc: func(ctx context.Context, e *domain.EntryLog) error {
			persisted <- e
			return nil
		},
	}
	svc := NewEntryLogService(repo, zap.NewNop(), testCollector)
	defer svc.Shutdown()

	p := patientPrincipal()
	svc.RecordAsync(p, domain.EntryLogin, "203.0.113.9")

	select {
	case e := <-persisted:
		assert.Equal(t, p.UserID, e.UserID)
		assert.Equal(t, domain.EntryLogin, e.Event)
		assert.Equal(t, "203.0.113.9", e.IPAddress)
	case <-time.After(2 * time.Second):
		t.Fatal("entry was never persisted")
	}
}

func TestRecordAsync_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	started := make(chan struct{})
	gate := make(chan struct{})
	var createdCount int32
	repo := &MockEntryLogRepository{
		CreateFunc: func(ctx context.Context, e *domain.EntryLog) error {
			if atomic.AddInt32(&createdCount, 1) == 1 {
				close(started)
				<-gate
			}
			return nil
		},
	}
	svc := NewEntryLogService(repo, zap.NewNop(), testCollector)

	p := patientPrincipal()

	// Park the worker on the first write, then fill the buffer exactly.
	svc.RecordAsync(p, domain.EntryLogin, "")
	<-started
	for i := 0; i < entryBufferSize; i++ {
		svc.RecordAsync(p, domain.EntryLogin, "")
	}

	// Buffer is full now: one more must be dropped, not block the caller.
	done := make(chan struct{})
	go func() {
		svc.RecordAsync(p, domain.EntryLogout, "")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RecordAsync blocked on a full buffer")
	}

	close(gate)
	svc.Shutdown()

	// Everything enqueued was flushed; the overflow entry never made it.
	assert.EqualValues(t, entryBufferSize+1, atomic.LoadInt32(&createdCount))
}

func TestShutdown_FlushesPendingEntries(t *testing.T) {
	var createdCount int32
	repo := &MockEntryLogRepository{
		CreateFunc: func(ctx context.Context, e *domain.EntryLog) error {
			atomic.AddInt32(&createdCount, 1)
			return nil
		},
	}
	svc := NewEntryLogService(repo, zap.NewNop(), testCollector)

	p := patientPrincipal()
	for i := 0; i < 25; i++ {
		svc.RecordAsync(p, domain.EntryLogin, "")
	}
	svc.Shutdown()

	assert.EqualValues(t, 25, atomic.LoadInt32(&createdCount))
}

func TestListRecent_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &MockEntryLogRepository{
		ListRecentFunc: func(ctx context.Context, limit int) ([]*domain.EntryLog, error) {
			gotLimit = limit
			return []*domain.EntryLog{{ID: uuid.New()}}, nil
		},
	}
	svc := NewEntryLogService(repo, zap.NewNop(), testCollector)
	defer svc.Shutdown()

	_, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 200, gotLimit)

	_, err = svc.ListRecent(context.Background(), 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, gotLimit)

	_, err = svc.ListRecent(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
}
