package cli

import (
	"bytes"
	_ "embed"
)

// defaultConfigurationContent seeds every setting before user configuration files and GITINFO_* variables apply.
//
//go:embed default_config.yaml
var defaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration together with its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(defaultConfigurationContent), configurationTypeConstant
}
