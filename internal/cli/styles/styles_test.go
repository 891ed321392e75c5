package styles

import (
	"strings"
	"testing"

	"github.com/promphitak-p/praweena/internal/config"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.percent, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ProgressBar(%d): expected %d filled cells, got %d", tt.percent, tt.filled, got)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("ProgressBar(%d): expected width 10, got %d", tt.percent, got)
		}
	}
}

func TestInitWithPartialTheme(t *testing.T) {
	Init(config.Theme{Preset: "monochrome", Accent: "#00FF00"})
	t.Cleanup(func() { Init(config.DefaultTheme()) })

	if got := TitleStyle.Render("x"); !strings.Contains(got, "x") {
		t.Errorf("Expected rendered title to contain text, got %q", got)
	}
}
