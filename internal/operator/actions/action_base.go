package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
