package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/promphitak-p/praweena/internal/app"
	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
		Database: config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"},
		Auth:     config.AuthConfig{JWTSecret: "secret"},
	}
}

func TestMigrate(t *testing.T) {
	ctx := cli.WithConfig(context.Background(), testConfig())

	out, _, err := testutil.ExecuteCommand(t, ctx, MigrateCmd())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "schema version ") || strings.Contains(out, "version 0") {
		t.Errorf("Expected a positive schema version, got %q", out)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	a, err := app.New(context.Background(), cfg, app.WithDB(testutil.SetupTestDB(t)))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	ctx, cancel := context.WithCancel(cli.WithConfig(context.Background(), cfg))
	ctx = cli.WithCLI(ctx, &cli.CLI{App: a, Config: cfg})

	done := make(chan error, 1)
	go func() {
		_, _, err := testutil.ExecuteCommand(t, ctx, ServeCmd(), "--addr", "127.0.0.1:0")
		done <- err
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	ctx := cli.WithConfig(context.Background(), cfg)

	_, _, err := testutil.ExecuteCommand(t, ctx, ServeCmd())
	if cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("Expected usage exit code, got %d (%v)", cli.ExitCode(err), err)
	}
}
