package inspect

import (
	"time"

	"github.com/temirov/gitinfo/internal/dependencies"
	"github.com/temirov/gitinfo/internal/report"
)

const (
	configurationBackendKeyConstant   = "backend"
	configurationOutputKeyConstant    = "output"
	configurationTimeoutKeyConstant   = "timeout"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures configuration values for the inspect command.
type CommandConfiguration struct {
	Backend dependencies.Backend `mapstructure:"backend"`
	Output  report.Format        `mapstructure:"output"`
	Timeout time.Duration        `mapstructure:"timeout"`
}

// DefaultCommandConfiguration inspects through the git executable, renders JSON and applies no timeout.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Backend: dependencies.BackendGit,
		Output:  report.FormatJSON,
		Timeout: 0,
	}
}

// DefaultConfigurationValues returns the defaults keyed beneath rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationBackendKeyConstant: string(defaults.Backend),
		rootKey + configurationKeySeparatorConstant + configurationOutputKeyConstant:  string(defaults.Output),
		rootKey + configurationKeySeparatorConstant + configurationTimeoutKeyConstant: defaults.Timeout,
	}
}

// Sanitize fills unset values with defaults and discards negative timeouts.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	if len(sanitized.Backend) == 0 {
		sanitized.Backend = defaults.Backend
	}
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaults.Output
	}
	if sanitized.Timeout < 0 {
		sanitized.Timeout = defaults.Timeout
	}

	return sanitized
}
