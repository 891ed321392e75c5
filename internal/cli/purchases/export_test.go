package purchases

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promphitak-p/praweena/internal/app"
	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/ledger"
	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/testutil"
)

func setup(t *testing.T) (context.Context, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a, err := app.New(context.Background(), &config.Config{}, app.WithDB(db))
	require.NoError(t, err)

	propertyID := testutil.CreateTestProperty(t, db, "บ้านสวน")
	todo := testutil.CreateTestTodo(t, db, propertyID, nil, "ปูพื้น")
	testutil.CreateTestPurchase(t, db, todo, "กระเบื้อง, 60x60", "20", "250", models.PurchaseOrdered)
	testutil.CreateTestPurchase(t, db, todo, "กาวยาแนว", "4", "120", models.PurchasePaid)

	ctx := cli.WithCLI(context.Background(), &cli.CLI{App: a, Config: &config.Config{}})
	return ctx, propertyID.String()
}

func TestExportCSVToStdout(t *testing.T) {
	ctx, propertyID := setup(t)

	out, _, err := testutil.ExecuteCommand(t, ctx, ExportCmd(), propertyID)
	require.NoError(t, err)

	records, err := ledger.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ledger.Header, records[0])
	items := []string{records[1][1], records[2][1]}
	assert.ElementsMatch(t, []string{"กระเบื้อง, 60x60", "กาวยาแนว"}, items)
}

func TestExportCSVToFile(t *testing.T) {
	ctx, propertyID := setup(t)
	path := filepath.Join(t.TempDir(), "purchases.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	_, stderr, err := testutil.ExecuteCommand(t, ctx, ExportCmd(), propertyID, "--out", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "กาวยาแนว")
}

func TestExportReport(t *testing.T) {
	ctx, propertyID := setup(t)

	raw, _, err := testutil.ExecuteCommand(t, ctx, ExportCmd(), propertyID, "--report", "--style", "raw", "--title", "Ledger")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "# Ledger"), raw)

	styled, _, err := testutil.ExecuteCommand(t, ctx, ExportCmd(), propertyID, "--report", "--style", "notty", "--title", "Ledger")
	require.NoError(t, err)
	assert.Contains(t, styled, "Ledger")
	assert.NotEqual(t, raw, styled)
}

func TestExportNeedsProperty(t *testing.T) {
	t.Setenv(cli.PropertyEnv, "")
	ctx, _ := setup(t)

	_, _, err := testutil.ExecuteCommand(t, ctx, ExportCmd())
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
