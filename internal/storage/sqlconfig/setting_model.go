package sqlconfig

import (
	"context"
	"time"
)

// Setting is a single key/value preference. Values are stored as text.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// ISettingTable defines the interface for settings storage. Put creates the key
// or overwrites its value; settings are never deleted individually.
//
//go:generate mockery --name ISettingTable --output mock_ISettingTable.go
type ISettingTable interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Put(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]*Setting, error)
}
