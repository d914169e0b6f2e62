package shardqueue

import "time"

// Config groups all tunables. Zero values are replaced by defaults in
// NewShardExecutor.
type Config struct {
	Shards         int
	QueueSize      int
	EnqueueTimeout time.Duration

	// ErrorHandler is called synchronously after a Job returns a non-nil
	// error, panics, or is skipped because its context ended. Leave nil if
	// you do not care.
	ErrorHandler func(error)
}
