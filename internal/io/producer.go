package io

import (
	"context"
)

type Producer interface {
	// Submits every work unit that is ready when the build starts
	Produce(work chan<- *WorkUnit)
	// Submits the work unit of a single node once it became ready
	Submit(work chan<- *WorkUnit, index int)
}

type Consumer interface {
	// Consumes work units until the channel is closed or the context is cancelled
	Consume(ctx context.Context, work chan *WorkUnit) error
}
