package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"
)

const settingsTable = "settings"

var _ ISettingTable = (*SettingsTable)(nil)

// SettingsTable provides access to the settings table.
type SettingsTable struct {
	exec bob.Executor
	now  func() time.Time
}

func NewSettingsTable(exec bob.Executor) *SettingsTable {
	return &SettingsTable{exec: exec, now: time.Now}
}

type settingRow struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

func (s *SettingsTable) Get(ctx context.Context, key string) (*Setting, error) {
	q := sqlite.Select(
		sm.Columns("key", "value", "updated_at"),
		sm.From(settingsTable),
		sm.Where(sqlite.Quote("key").EQ(sqlite.Arg(key))),
	)
	row, err := bob.One(ctx, s.exec, q, scan.StructMapper[settingRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rowToSetting(row)
}

func (s *SettingsTable) Put(ctx context.Context, key, value string) error {
	q := sqlite.Insert(
		im.OrReplace(),
		im.Into(settingsTable, "key", "value", "updated_at"),
		im.Values(
			sqlite.Arg(key),
			sqlite.Arg(value),
			sqlite.Arg(s.now().UTC().Format(time.RFC3339Nano)),
		),
	)
	_, err := bob.Exec(ctx, s.exec, q)
	return err
}

// List returns every setting ordered by key.
func (s *SettingsTable) List(ctx context.Context) ([]*Setting, error) {
	q := sqlite.Select(
		sm.Columns("key", "value", "updated_at"),
		sm.From(settingsTable),
		sm.OrderBy("key").Asc(),
	)
	rows, err := bob.All(ctx, s.exec, q, scan.StructMapper[settingRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Setting, 0, len(rows))
	for _, row := range rows {
		setting, err := rowToSetting(row)
		if err != nil {
			return nil, err
		}
		result = append(result, setting)
	}
	return result, nil
}

func rowToSetting(row settingRow) (*Setting, error) {
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("setting %s: bad updated_at %q: %w", row.Key, row.UpdatedAt, err)
	}
	return &Setting{Key: row.Key, Value: row.Value, UpdatedAt: updatedAt}, nil
}
