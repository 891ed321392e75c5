package cli

import (
	"context"
	"errors"

	"github.com/promphitak-p/praweena/internal/config"
)

type (
	cliKey    struct{}
	configKey struct{}
)

// WithConfig stores the loaded configuration on ctx
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored by WithConfig
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// WithCLI stores a ready CLI on ctx; commands then use it instead of
// opening their own
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// GetCLIFromContext returns the CLI stored on ctx, or opens one from the
// configuration on ctx. The caller closes it.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if c, ok := ctx.Value(cliKey{}).(*CLI); ok && c != nil {
		return c, nil
	}
	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg)
}
