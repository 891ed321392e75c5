package digest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/promphitak-p/praweena/internal/app"
	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/notify"
	"github.com/promphitak-p/praweena/internal/testutil"
)

type recorder struct {
	mu sync.Mutex
	to []string
}

func (r *recorder) Push(ctx context.Context, to, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = append(r.to, to)
	return nil
}

func setup(t *testing.T, opts ...app.Option) context.Context {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.CreateTestLead(t, db, "คุณสมชาย", nil, time.Now().In(notify.Bangkok))
	a, err := app.New(context.Background(), &config.Config{}, append(opts, app.WithDB(db))...)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return cli.WithCLI(context.Background(), &cli.CLI{App: a, Config: &config.Config{}})
}

func TestDigest_DryRun(t *testing.T) {
	ctx := setup(t)

	out, _, err := testutil.ExecuteCommand(t, ctx, DigestCmd(), "--dry-run")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "คุณสมชาย") {
		t.Errorf("Expected today's lead in the summary, got %q", out)
	}
}

func TestDigest_Send(t *testing.T) {
	rec := &recorder{}
	ctx := setup(t, app.WithPusher(rec))

	_, stderr, err := testutil.ExecuteCommand(t, ctx, DigestCmd(), "--to", "C123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rec.to) != 1 || rec.to[0] != "C123" {
		t.Errorf("Expected one push to C123, got %v", rec.to)
	}
	if !strings.Contains(stderr, "sent") {
		t.Errorf("Expected confirmation, got %q", stderr)
	}
}

func TestDigest_NotConfigured(t *testing.T) {
	ctx := setup(t)

	_, _, err := testutil.ExecuteCommand(t, ctx, DigestCmd())
	if !errors.Is(err, ErrLineNotConfigured) {
		t.Fatalf("Expected ErrLineNotConfigured, got %v", err)
	}
	if cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("Expected usage exit code, got %d", cli.ExitCode(err))
	}
}
