package storage

import (
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// Reader groups the ledger tables bound to one executor.
type Reader struct {
	Transactions sqlconfig.ITransactionTable
	Settings     sqlconfig.ISettingTable
}
