package sqlconfig

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record with this id already exists")
)

// Transaction represents a stored expense record. Date is a calendar date at
// midnight UTC.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	CreatedAt   time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// List returns every record, newest date first.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id string) (*Transaction, error)
	Insert(ctx context.Context, tx *Transaction) error
	List(ctx context.Context) ([]*Transaction, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}
