package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const emptyDocument = `{"expenses":[],"settings":{}}`

// importAfterAddProcessor starts an import as soon as the first AddTransaction
// has committed, then gives it time to run before reporting the add back.
type importAfterAddProcessor struct {
	ActionProcessor
	svc       *Service
	once      sync.Once
	done      chan struct{}
	importErr error
}

func (p *importAfterAddProcessor) Process(ctx context.Context, action actions.IAction) error {
	err := p.ActionProcessor.Process(ctx, action)
	if _, ok := action.(*actions.AddTransaction); ok && err == nil {
		p.once.Do(func() {
			go func() {
				defer close(p.done)
				_, p.importErr = p.svc.Exchange.Import(context.Background(), strings.NewReader(emptyDocument))
			}()
			time.Sleep(50 * time.Millisecond)
		})
	}
	return err
}

func newOperatorStore(t *testing.T) (*storage.Storage, *operator.OperatorDelegator) {
	t.Helper()
	store := storage.NewMemoryStorage()
	op := operator.NewOperatorDelegator(store)
	op.Start()
	t.Cleanup(op.Stop)
	return store, op
}

func storedIDs(t *testing.T, store *storage.Storage) []string {
	t.Helper()
	rows, err := store.Transactions.List(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	sort.Strings(ids)
	return ids
}

func cachedIDs(svc *Service) []string {
	txs := svc.Transaction.All()
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestCreateTransaction_ImportRightAfterCommitKeepsCacheInSync(t *testing.T) {
	ctx := context.Background()
	store, op := newOperatorStore(t)
	processor := &importAfterAddProcessor{ActionProcessor: op, done: make(chan struct{})}
	logger, _ := test.NewNullLogger()
	svc := NewService(store, processor, testEngine(), nil, logger)
	processor.svc = svc
	require.NoError(t, svc.Load(ctx))

	tx := mustCreate(t, svc, draft("Lunch", "12.50", ledger.CategoryFood, today()))
	<-processor.done
	require.NoError(t, processor.importErr)

	_, err := store.Transactions.FindByID(ctx, tx.ID)
	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)

	_, err = svc.Transaction.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.Equal(t, 0, svc.Transaction.Count())
}

func TestConcurrentWrites_CacheMatchesStore(t *testing.T) {
	ctx := context.Background()
	store, op := newOperatorStore(t)
	logger, _ := test.NewNullLogger()
	svc := NewService(store, op, testEngine(), nil, logger)
	require.NoError(t, svc.Load(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx, err := svc.Transaction.CreateTransaction(ctx, draft(fmt.Sprintf("Item %d", i), "5", ledger.CategoryShopping, today()))
			assert.NoError(t, err)
			if i%3 == 0 {
				// The import may already have removed it.
				if err := svc.Transaction.DeleteTransaction(ctx, tx.ID); err != nil {
					assert.ErrorIs(t, err, ErrTransactionNotFound)
				}
			}
			if i == 10 {
				_, err := svc.Exchange.Import(ctx, strings.NewReader(emptyDocument))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, storedIDs(t, store), cachedIDs(svc))
}
