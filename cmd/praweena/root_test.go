package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promphitak-p/praweena/internal/testutil"
)

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "property", "category", "export", "digest", "config"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("Expected %q to be registered, got %v", name, err)
		}
	}
}

func TestRootLoadsConfigForMigrate(t *testing.T) {
	chdir(t, t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "praweena.db")
	t.Setenv("PRAWEENA_DATABASE_DRIVER", "sqlite")
	t.Setenv("PRAWEENA_DATABASE_URL", dbPath)
	t.Setenv("PRAWEENA_AUTH_JWT_SECRET", "secret")

	out, _, err := testutil.ExecuteCommand(t, context.Background(), newRootCmd(),
		"migrate", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--log-level", "error")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "schema version") {
		t.Errorf("Expected schema version output, got %q", out)
	}
}
