package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"expense-tracker"}, args...))
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", filepath.Join(dir, "ledger.db"))
	t.Setenv("LEDGER_TIMEZONE", "UTC")
	return dir
}

func TestSuggestCommand(t *testing.T) {
	setupEnv(t)
	out, err := runApp(t, "suggest", "Uber", "to", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "transport (Transportation)")
}

func TestSuggestCommand_CustomRules(t *testing.T) {
	dir := setupEnv(t)
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("rules:\n  - category: education\n    keywords: [uber]\n"), 0o600))
	t.Setenv("CATEGORY_RULES_FILE", rules)

	out, err := runApp(t, "suggest", "Uber")
	require.NoError(t, err)
	assert.Contains(t, out, "education (Education)")
}

func TestImportExportCommands(t *testing.T) {
	dir := setupEnv(t)
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"expenses": [
			{"id": "a", "description": "Coffee", "amount": 4.5, "date": "2025-06-10", "category": "food"},
			{"id": "b", "description": "", "amount": 1, "date": "2025-06-10", "category": "food"}
		],
		"settings": {"monthlyBudget": 500}
	}`), 0o600))

	out, err := runApp(t, "import", in)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 transactions, 1 failed")

	csvPath := filepath.Join(dir, "out.csv")
	_, err = runApp(t, "export", "--format", "csv", "--out", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a,2025-06-10,Coffee,food,4.50")

	out, err = runApp(t, "export", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"monthlyBudget": 500`)
}

func TestImportCommand_MissingArgument(t *testing.T) {
	setupEnv(t)
	_, err := runApp(t, "import")
	assert.Error(t, err)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("DATA_BACKEND", "postgres")
	_, err := runApp(t, "insights")
	assert.ErrorContains(t, err, "postgres")
}

func TestInsightsCommand_EmptyLedger(t *testing.T) {
	setupEnv(t)
	out, err := runApp(t, "--backend", "memory", "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "This month: $0 over 0 transactions")
}

func TestClearCommand(t *testing.T) {
	dir := setupEnv(t)
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"expenses": [
			{"id": "a", "description": "Coffee", "amount": 4.5, "date": "2025-06-10", "category": "food"},
			{"id": "b", "description": "Bus", "amount": 2, "date": "2025-06-11", "category": "transport"}
		],
		"settings": {"monthlyBudget": 500}
	}`), 0o600))
	_, err := runApp(t, "import", in)
	require.NoError(t, err)

	out, err := runApp(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 2 transactions")

	out, err = runApp(t, "export", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"expenses": []`)
	assert.Contains(t, out, `"monthlyBudget": 500`)
}

func TestClearCommand_RequiresConfirmation(t *testing.T) {
	setupEnv(t)
	_, err := runApp(t, "clear")
	assert.ErrorContains(t, err, "--yes")
}
