package cli

import (
	"context"
	"fmt"

	"github.com/promphitak-p/praweena/internal/app"
	"github.com/promphitak-p/praweena/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	// owned is set when NewCLI opened the database itself
	owned bool
}

// NewCLI opens the database named in cfg and builds the application
func NewCLI(ctx context.Context, cfg *config.Config, opts ...app.Option) (*CLI, error) {
	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return &CLI{App: a, Config: cfg, owned: true}, nil
}

// Close cleans up CLI resources. A CLI injected with WithCLI is left open
// for its creator to close.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
