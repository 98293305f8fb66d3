package global

import (
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfig reads and validates the configuration, exiting on any error
func LoadConfig() {
	configPath, err := configuration.DetectAndReadConfigFile()
	if err != nil {
		ui.Fatal("Error reading configuration file: %v", err)
	}
	if len(configPath) > 0 {
		ui.Debug("Using configuration file at: %s", configPath)
	} else {
		ui.Debug("No configuration file found, using defaults")
	}

	if err := configuration.LoadConfig(); err != nil {
		ui.Fatal("%v", err)
	}
	if err := configuration.Validate(); err != nil {
		ui.Fatal("Config Validation Error: %v", err)
	}
}
