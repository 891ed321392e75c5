package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/services/todo"
)

func TestValidateColorHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		color string
		valid bool
	}{
		{"#FF0000", true},
		{"#874bfd", true},
		{"FF0000", false},
		{"#FFF", false},
		{"#GG0000", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateColorHex(tt.color)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateColorHex(%q): expected valid=%v, got %v", tt.color, tt.valid, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Expected ErrInvalidColor, got %v", err)
		}
	}
}

func TestGetPropertyID(t *testing.T) {
	id := uuid.New()
	fromEnv := uuid.New()

	newCmd := func(flag string) *cobra.Command {
		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().String("property", "", "")
		if flag != "" {
			_ = cmd.Flags().Set("property", flag)
		}
		return cmd
	}

	got, err := GetPropertyID(newCmd(""), []string{id.String()})
	if err != nil || got != id {
		t.Errorf("Expected %s from argument, got %s (%v)", id, got, err)
	}

	got, err = GetPropertyID(newCmd(id.String()), nil)
	if err != nil || got != id {
		t.Errorf("Expected %s from flag, got %s (%v)", id, got, err)
	}

	t.Setenv(PropertyEnv, fromEnv.String())
	got, err = GetPropertyID(newCmd(""), nil)
	if err != nil || got != fromEnv {
		t.Errorf("Expected %s from env, got %s (%v)", fromEnv, got, err)
	}

	t.Setenv(PropertyEnv, "")
	_, err = GetPropertyID(newCmd(""), nil)
	if !errors.Is(err, ErrNoProperty) {
		t.Errorf("Expected ErrNoProperty, got %v", err)
	}
	if ExitCode(err) != ExitUsage {
		t.Errorf("Expected usage exit code, got %d", ExitCode(err))
	}

	_, err = GetPropertyID(newCmd(""), []string{"house-1"})
	if ExitCode(err) != ExitUsage {
		t.Errorf("Expected usage exit code for malformed ID, got %d", ExitCode(err))
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"not found", fmt.Errorf("load: %w", models.ErrNotFound), ExitNotFound},
		{"todo not found", todo.ErrTodoNotFound, ExitNotFound},
		{"bad view", todo.ErrInvalidView, ExitValidation},
		{"bad color", ErrInvalidColor, ExitValidation},
		{"usage", &UsageError{Err: errors.New("missing flag")}, ExitUsage},
		{"other", errors.New("boom"), ExitError},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: expected exit code %d, got %d", tt.name, tt.want, got)
		}
	}
}
