package config

// Theme holds the terminal colors used by the CLI
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `mapstructure:"preset" yaml:"preset"`

	Accent string `mapstructure:"accent" yaml:"accent"`
	Title  string `mapstructure:"title" yaml:"title"`
	Subtle string `mapstructure:"subtle" yaml:"subtle"` // Muted text
	Normal string `mapstructure:"normal" yaml:"normal"`

	Done    string `mapstructure:"done" yaml:"done"` // Finished phases, paid amounts
	Warning string `mapstructure:"warning" yaml:"warning"`
	Error   string `mapstructure:"error" yaml:"error"`
}

// DefaultTheme returns the default purple theme
func DefaultTheme() Theme {
	return Theme{
		Preset:  "default",
		Accent:  "#874BFD",
		Title:   "#D75FD7",
		Subtle:  "#585858",
		Normal:  "#D0D0D0",
		Done:    "#5FD75F",
		Warning: "#FFD700",
		Error:   "#FF0000",
	}
}

// MonochromeTheme returns a black and white theme
func MonochromeTheme() Theme {
	return Theme{
		Preset:  "monochrome",
		Accent:  "#FFFFFF",
		Title:   "#FFFFFF",
		Subtle:  "#808080",
		Normal:  "#D0D0D0",
		Done:    "#FFFFFF",
		Warning: "#C0C0C0",
		Error:   "#FFFFFF",
	}
}

func preset(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// ApplyDefaults fills in missing colors from the preset
func (t *Theme) ApplyDefaults() {
	p := preset(t.Preset)
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&t.Preset, p.Preset)
	fill(&t.Accent, p.Accent)
	fill(&t.Title, p.Title)
	fill(&t.Subtle, p.Subtle)
	fill(&t.Normal, p.Normal)
	fill(&t.Done, p.Done)
	fill(&t.Warning, p.Warning)
	fill(&t.Error, p.Error)
}
