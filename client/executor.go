package client

import (
	"context"

	"github.com/rosette-api/rosette-go/client/internal/shardqueue"
)

// executor abstracts the worker pool that runs asynchronous calls.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Stop()
}
