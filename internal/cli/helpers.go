package cli

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/promphitak-p/praweena/internal/config"
)

// PropertyEnv names the environment variable holding the default property
const PropertyEnv = config.EnvPrefix + "_PROPERTY"

var (
	ErrInvalidColor = errors.New("color must be in hex format #RRGGBB")
	ErrNoProperty   = errors.New("no property given")

	hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	if !hexColor.MatchString(color) {
		return fmt.Errorf("%w (e.g., #FF0000), got: %s", ErrInvalidColor, color)
	}
	return nil
}

// GetPropertyID reads the property from the first positional argument, the
// --property flag or PRAWEENA_PROPERTY, in that order
func GetPropertyID(cmd *cobra.Command, args []string) (uuid.UUID, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}
	if raw == "" && cmd.Flags().Lookup("property") != nil {
		raw, _ = cmd.Flags().GetString("property")
	}
	if raw == "" {
		raw = os.Getenv(PropertyEnv)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, &UsageError{Err: fmt.Errorf("%w: pass it as an argument, with --property or in %s", ErrNoProperty, PropertyEnv)}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &UsageError{Err: fmt.Errorf("invalid property ID %q: %w", raw, err)}
	}
	return id, nil
}

// AddOutputFlags registers the property selector and the agent-friendly
// output flags shared by the read commands
func AddOutputFlags(fs *pflag.FlagSet) {
	fs.String("property", "", "Property ID (uses "+PropertyEnv+" env var if not specified)")
	fs.Bool("json", false, "Output in JSON format")
	fs.Bool("quiet", false, "Minimal output")
}

// FormatterFor builds an OutputFormatter from the command's output flags
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode, Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
}
