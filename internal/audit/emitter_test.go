package audit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miradorhq/mirador/pkg/api"
)

type fakeSink struct {
	mu      sync.Mutex
	entries []api.AuditLogByName
	err     error
	block   chan struct{}
}

func (f *fakeSink) LogByName(ctx context.Context, entry api.AuditLogByName) (*api.AuditRecord, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.entries = append(f.entries, entry)
	return &api.AuditRecord{ID: len(f.entries)}, nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func TestEmitterDeliversEvents(t *testing.T) {
	sink := &fakeSink{}
	e := NewEmitter(sink)

	schoolID := 3
	e.Log(api.ActionCreate, "Project created: demo", &schoolID)
	e.UserLogin("alice")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))

	require.Equal(t, 2, sink.count())
	assert.Equal(t, "Create", sink.entries[0].ActionTypeName)
	assert.Equal(t, int64(3), sink.entries[0].SchoolID.Int64())
	assert.False(t, sink.entries[0].SchoolID.IsNil())
	assert.Equal(t, "User logged in: alice", sink.entries[1].Description)
	assert.True(t, sink.entries[1].SchoolID.IsNil())
}

func TestEmitterSwallowsDeliveryFailure(t *testing.T) {
	sink := &fakeSink{err: fmt.Errorf("connection refused")}
	e := NewEmitter(sink)

	// the caller's operation must complete normally even though every
	// delivery fails
	e.Log(api.ActionUpdate, "Process updated: p1", nil)
	e.FileUpload("data.csv", "p1", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))
	assert.Equal(t, 0, sink.count())
}

func TestEmitterNeverBlocksWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	sink := &fakeSink{block: block}
	e := NewEmitter(sink, Options{QueueSize: 1})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			e.Log(api.ActionRead, "spam", nil)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Log blocked on a full queue")
	}
	assert.Greater(t, e.Dropped(), uint64(0))

	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))
}

func TestEmitterCloseIsIdempotent(t *testing.T) {
	e := NewEmitter(&fakeSink{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))
	require.NoError(t, e.Close(ctx))
}

func TestEmitterLogAfterCloseIsDropped(t *testing.T) {
	sink := &fakeSink{}
	e := NewEmitter(sink)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))

	// must drop silently, never panic on the closed queue
	assert.NotPanics(t, func() {
		e.Log(api.ActionRead, "late event", nil)
	})
	assert.Equal(t, uint64(1), e.Dropped())
	assert.Equal(t, 0, sink.count())
}

func TestConvenienceWrapperFormatting(t *testing.T) {
	sink := &fakeSink{}
	e := NewEmitter(sink)

	e.ETLLoad("egresados", "ATI", nil)
	e.FileDownload("f.csv", "proc-1", nil)
	e.AnalyticsRun("distribucion", "profesores", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))

	require.Equal(t, 3, sink.count())
	assert.Equal(t, "ETL load: egresados data for ATI", sink.entries[0].Description)
	assert.Equal(t, "Create", sink.entries[0].ActionTypeName)
	assert.Equal(t, "File downloaded: f.csv from project proc-1", sink.entries[1].Description)
	assert.Equal(t, "Read", sink.entries[1].ActionTypeName)
	assert.Equal(t, "Analytics executed: distribucion on profesores", sink.entries[2].Description)
	assert.Equal(t, "Review", sink.entries[2].ActionTypeName)
}
