package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

var ErrInvalidBudget = errors.New("monthly budget must not be negative")

// SettingsService handles the key/value settings, of which the monthly budget is
// the only one the application reads.
type SettingsService struct {
	*core
}

// MonthlyBudget returns the saved budget. ok is false when none was saved; a
// stored value that is not a number is treated the same way.
func (s *SettingsService) MonthlyBudget() (budget decimal.Decimal, ok bool) {
	raw, found := s.state.setting(ledger.SettingMonthlyBudget)
	if !found || raw == "" {
		return decimal.Zero, false
	}
	budget, err := decimal.NewFromString(raw)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"value": raw,
			"error": err.Error(),
		}).Warn("Service.Settings.InvalidBudget")
		return decimal.Zero, false
	}
	return budget, true
}

// SaveMonthlyBudget stores a new monthly budget, overwriting any previous one.
func (s *SettingsService) SaveMonthlyBudget(ctx context.Context, budget decimal.Decimal) error {
	if budget.IsNegative() {
		return ErrInvalidBudget
	}
	value := budget.String()
	save := &actions.SaveSetting{Key: ledger.SettingMonthlyBudget, Value: value}
	if err := s.write(ctx, save, func() { s.state.putSetting(ledger.SettingMonthlyBudget, value) }); err != nil {
		return fmt.Errorf("save monthly budget: %w", err)
	}
	return nil
}

// Settings returns a copy of every stored setting.
func (s *SettingsService) Settings() map[string]string {
	return s.state.settingsCopy()
}
