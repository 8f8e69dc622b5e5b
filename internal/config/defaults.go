package config

// DefaultConfig returns configuration with sensible defaults. These are
// used when no config file exists or when the file omits fields.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Package: "django",
			Roots:   []string{},
		},
		Output: OutputConfig{
			Dir: "content",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Merge merges a loaded config with defaults. Values from the loaded
// config take precedence; empty fields fall back to the default.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Extract.Package = loaded.Extract.Package
	if result.Extract.Package == "" {
		result.Extract.Package = defaults.Extract.Package
	}

	result.Extract.Roots = loaded.Extract.Roots
	if len(result.Extract.Roots) == 0 {
		result.Extract.Roots = defaults.Extract.Roots
	}

	result.Output.Dir = loaded.Output.Dir
	if result.Output.Dir == "" {
		result.Output.Dir = defaults.Output.Dir
	}

	result.Log.Level = loaded.Log.Level
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}

	return result
}
