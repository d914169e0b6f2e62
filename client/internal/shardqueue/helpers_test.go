package shardqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// occupy parks the worker for key's shard on a job that runs until the
// returned release func is called.
func occupy(t *testing.T, ex *ShardExecutor, key string) (release func()) {
	t.Helper()
	started := make(chan struct{})
	gate := make(chan struct{})
	require.NoError(t, ex.Submit(context.Background(), key, JobFunc(func(context.Context) error {
		close(started)
		<-gate
		return nil
	})))
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the blocking job")
	}
	return func() { close(gate) }
}

func noop(context.Context) error { return nil }

// waitClosed fails the test if ch is not closed within d.
func waitClosed(t *testing.T, ch <-chan struct{}, d time.Duration, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(d):
		t.Fatalf("timed out waiting for %s", what)
	}
}
