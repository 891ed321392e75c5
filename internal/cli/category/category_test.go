package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/app"
	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/taxonomy"
	"github.com/promphitak-p/praweena/internal/testutil"
)

func setup(t *testing.T) context.Context {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{}, app.WithDB(testutil.SetupTestDB(t)))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return cli.WithCLI(context.Background(), &cli.CLI{App: a, Config: &config.Config{}})
}

func TestCreateAndList(t *testing.T) {
	ctx := setup(t)

	out, _, err := testutil.ExecuteCommand(t, ctx, CreateCmd(), "--name", "งานไฟฟ้าชั้นสอง", "--color", "#FFAA00", "--quiet")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := uuid.Parse(strings.TrimSpace(out)); err != nil {
		t.Errorf("Expected quiet output to be the new ID, got %q", out)
	}

	out, _, err = testutil.ExecuteCommand(t, ctx, ListCmd())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "งานไฟฟ้าชั้นสอง") {
		t.Errorf("Expected new category in list, got:\n%s", out)
	}
	if !strings.Contains(out, taxonomy.PhaseLabel(taxonomy.PhaseSystems)) {
		t.Errorf("Expected systems phase label, got:\n%s", out)
	}
}

func TestCreate_InvalidColor(t *testing.T) {
	ctx := setup(t)

	_, stderr, err := testutil.ExecuteCommand(t, ctx, CreateCmd(), "--name", "x", "--color", "orange")
	if !errors.Is(err, cli.ErrInvalidColor) {
		t.Fatalf("Expected ErrInvalidColor, got %v", err)
	}
	if !strings.Contains(stderr, "hex format") {
		t.Errorf("Expected error on stderr, got %q", stderr)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	ctx := setup(t)

	if _, _, err := testutil.ExecuteCommand(t, ctx, CreateCmd()); err == nil {
		t.Fatal("Expected missing --name to fail")
	}
}
