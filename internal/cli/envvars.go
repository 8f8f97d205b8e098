package cli

import (
	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from VIEWCTL_* env vars.
type baseEnv struct {
	// ConfigPath is the viewctl.yaml path from VIEWCTL_CONFIG.
	ConfigPath string `env:"VIEWCTL_CONFIG"`
	// LogLevel is the logging level from VIEWCTL_LOG_LEVEL.
	LogLevel string `env:"VIEWCTL_LOG_LEVEL"`
}

// projectEnv overrides project settings; flags still win.
type projectEnv struct {
	// Executor selects the template engine from VIEWCTL_EXECUTOR.
	Executor string `env:"VIEWCTL_EXECUTOR"`
	// Extension is the template extension from VIEWCTL_EXTENSION.
	Extension string `env:"VIEWCTL_EXTENSION"`
	// Dirs is a comma-separated list of search directories from VIEWCTL_DIRS.
	Dirs []string `env:"VIEWCTL_DIRS" envSeparator:","`
	// MaxDepth caps the layout chain from VIEWCTL_MAX_DEPTH.
	MaxDepth int `env:"VIEWCTL_MAX_DEPTH"`
	// Vars is a k=v,k2=v2 list from VIEWCTL_VARS.
	Vars string `env:"VIEWCTL_VARS"`
	// DataFiles is a comma-separated list of data files from VIEWCTL_DATA_FILES.
	DataFiles []string `env:"VIEWCTL_DATA_FILES" envSeparator:","`
}

// parseEnv fills target from VIEWCTL_* env vars via caarlos0/env.
func parseEnv(target any) error {
	return envparse.Parse(target)
}
