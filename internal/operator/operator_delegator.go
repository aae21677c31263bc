package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

var ErrStopped = errors.New("operator stopped")

// OperatorDelegator owns the queue and the single Operator draining it. Every
// store mutation goes through Process, so there is exactly one writer.
type OperatorDelegator struct {
	storage  *storage.Storage
	queue    chan ActionItem
	quit     chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	start    sync.Once
	stopOnce sync.Once
}

func NewOperatorDelegator(s *storage.Storage) *OperatorDelegator {
	return &OperatorDelegator{
		storage: s,
		queue:   make(chan ActionItem, 1000),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (d *OperatorDelegator) Start() {
	d.start.Do(func() {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue)
		go func() {
			defer d.wg.Done()
			op.Run(d.quit)
		}()
	})
}

// Stop lets the current action finish, fails queued ones and waits for the worker.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.quit)
		d.wg.Wait()
		close(d.done)
	})
}

// Process queues the action and waits for its outcome. Once the worker has
// picked an action up, Process reports its real result even if ctx is
// cancelled meanwhile, so callers never miss a committed write.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	select {
	case d.queue <- item:
	case <-d.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-d.done:
		select {
		case resp := <-respCh:
			return resp.err
		default:
			return ErrStopped
		}
	}
}
