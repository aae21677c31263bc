package operator

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Operator is the worker that applies actions from the queue, one at a time,
// each inside its own storage unit of work.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run processes items until quit is closed, then answers anything still
// queued with ErrStopped.
func (o *Operator) Run(quit <-chan struct{}) {
	for {
		select {
		case item := <-o.queue:
			o.processItem(item)
		case <-quit:
			o.drain()
			return
		}
	}
}

func (o *Operator) drain() {
	for {
		select {
		case item := <-o.queue:
			item.response <- ActionItemResponse{err: ErrStopped}
		default:
			return
		}
	}
}

func (o *Operator) processItem(item ActionItem) {
	// A request that gave up while queued is not applied.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
