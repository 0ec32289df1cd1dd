package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kedaikopi/backoffice/internal/pricing"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI in-process and returns what the command printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := Execute()
	return out.String(), err
}

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection([]string{"1=3", "4=10,11", "4=12", "7="})
	require.NoError(t, err)
	assert.Equal(t, pricing.Selection{1: {3}, 4: {10, 11, 12}, 7: {}}, sel)

	for _, bad := range []string{"1", "x=2", "1=y", "0=1", "1=2,,-3"} {
		_, err := parseSelection([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "1,2", " 5 "}, "variant group")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2, 5}, ids)

	_, err = parseIDs([]string{"0"}, "variant group")
	assert.EqualError(t, err, `invalid variant group id "0"`)
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "backoffice.yml")
	dbURL := "sqlite://" + filepath.Join(dir, "backoffice.db")

	_, err := run(t, "migrate", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Run 'backoffice init' first")

	out, err := run(t, "init", "--config", cfg, "--database-url", dbURL)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized backoffice project")

	out, err = run(t, "init", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	out, err = run(t, "migrate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 7 migration(s)")

	out, err = run(t, "schema", "--check", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Database matches the migrations (7 tables)")

	out, err = run(t, "seed", "--skip-users", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 8 categories")

	out, err = run(t, "category", "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Non-Coffee")

	out, err = run(t, "menu", "list", "--search", "latte", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "CF-LAT-004")
	assert.NotContains(t, out, "CF-ESP-001")

	// Seeded ids: Latte is menu 4, Size is group 1 (Large = option 3),
	// Temperature is group 2 (Iced = option 6).
	out, err = run(t, "price", "4", "--select", "1=3", "--select", "2=6", "--json", "--config", cfg)
	require.NoError(t, err)
	var quote map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.Equal(t, true, quote["valid"])
	assert.Equal(t, "30000.00", quote["base_price"])
	assert.Equal(t, "41000.00", quote["final_price"])
	assert.Equal(t, "CF-LAT-004", quote["sku"])

	out, err = run(t, "price", "4", "--select", "1=3,4", "--config", cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidSelection))
	assert.Contains(t, out, "variant group 1 allows only one option")
	assert.Contains(t, out, "variant group 2 requires a selection")

	out, err = run(t, "variants", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Small [1]: -Rp 5.000")
	assert.Contains(t, out, "Regular [2]: No extra cost")

	out, err = run(t, "user", "create", "--name", "Ops", "--email", "ops@coffeshop.com",
		"--password", "password1", "--role", "cashier", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ops@coffeshop.com (cashier)")

	out, err = run(t, "rollback", "7", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back 7 migration(s)")
}

func TestSchemaWithoutDatabase(t *testing.T) {
	out, err := run(t, "schema", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Table: menus")
	assert.Contains(t, out, "Foreign key: variant_group_id -> variant_groups.id ON DELETE CASCADE")
}
