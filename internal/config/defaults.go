package config

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SourceDefaultApplier fills source discovery defaults.
type SourceDefaultApplier struct{}

func (SourceDefaultApplier) Domain() string { return "source" }

func (SourceDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.SourceDir == "" {
		cfg.Project.SourceDir = "src"
	}
	if len(cfg.Source.Globs) == 0 {
		cfg.Source.Globs = []string{cfg.Project.SourceDir + "/**/*.ts"}
	}
	return nil
}

// OutputDefaultApplier fills output layout defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "docs"
	}
	return nil
}

// BuildDefaultApplier fills pipeline execution defaults.
type BuildDefaultApplier struct{}

func (BuildDefaultApplier) Domain() string { return "build" }

func (BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.Concurrency == "" {
		cfg.Build.Concurrency = "auto"
	}
	if cfg.Build.TypeCheck.Command == "" {
		cfg.Build.TypeCheck.Command = "tsc"
	}
	if cfg.Build.TypeCheck.CompilerOptions == nil {
		cfg.Build.TypeCheck.CompilerOptions = map[string]any{
			"noEmit":           true,
			"strict":           true,
			"moduleResolution": "node",
			"target":           "es2017",
			"lib":              []any{"es2017"},
		}
	}
	return nil
}

// SiteDefaultApplier fills documentation-site defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = cfg.Project.Name
	}
	if cfg.Site.Theme == "" {
		cfg.Site.Theme = "pmarsceill/just-the-docs"
	}
	return nil
}

// LoggingDefaultApplier fills logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		SourceDefaultApplier{},
		OutputDefaultApplier{},
		BuildDefaultApplier{},
		SiteDefaultApplier{},
		LoggingDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
