package configuration

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/markusressel/emcfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Sensor     SensorConfig     `json:"sensor" yaml:"sensor"`
	Fan        FanConfig        `json:"fan" yaml:"fan"`
	Curve      CurveConfig      `json:"curve" yaml:"curve"`
	Controller ControllerConfig `json:"controller" yaml:"controller"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Api        ApiConfig        `json:"api" yaml:"api"`
	Stress     StressConfig     `json:"stress" yaml:"stress"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("emcfan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Fatal("Couldn't detect home directory: %v", err)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/emcfan/")
	}

	viper.SetEnvPrefix("emcfan")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("curve", []interface{}{
		map[string]interface{}{"temp": 30, "duty": 30},
		map[string]interface{}{"temp": 45, "duty": 32},
		map[string]interface{}{"temp": 47, "duty": 34},
		map[string]interface{}{"temp": 53, "duty": 55},
		map[string]interface{}{"temp": 55, "duty": 57},
		map[string]interface{}{"temp": 70, "duty": 59},
	})

	viper.SetDefault("controller.interval", 100*time.Millisecond)
	viper.SetDefault("controller.readings", 30)
	viper.SetDefault("controller.minStep", 3)
	viper.SetDefault("controller.maxConsecutiveErrors", 50)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 10001)

	viper.SetDefault("stress.output", "stress.csv")
	viper.SetDefault("stress.idle", 60*time.Second)
	viper.SetDefault("stress.duration", 300*time.Second)
	viper.SetDefault("stress.interval", 1*time.Second)
	viper.SetDefault("stress.exec", "stress")
}

// DetectAndReadConfigFile reads the configuration file (if any) and returns its path.
// An empty path means that no configuration file was found and only default values are used.
func DetectAndReadConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		return "", &ConfigurationError{Reason: err.Error()}
	}
	return viper.ConfigFileUsed(), nil
}

// LoadConfig decodes the values known to viper into CurrentConfig
func LoadConfig() error {
	var config Configuration
	err := viper.Unmarshal(&config, viper.DecodeHook(decodeHooks()))
	if err != nil {
		return &ConfigurationError{Reason: err.Error()}
	}
	applyImplicitDefaults(&config)
	CurrentConfig = config
	return nil
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		CurvePointsHookFunc(),
		SecondsOrDurationHookFunc(),
		StrictIntHookFunc(),
		StrictFloatHookFunc(),
		DefaultTrueBoolHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// applyImplicitDefaults fills in sub-configurations that cannot be expressed as
// viper defaults without clashing with an alternative sub-configuration chosen by the user.
func applyImplicitDefaults(config *Configuration) {
	if config.Sensor.File == nil && config.Sensor.HwMon == nil && config.Sensor.Cmd == nil {
		config.Sensor.File = &FileSensorConfig{}
	}
	if config.Sensor.File != nil {
		if len(config.Sensor.File.Path) <= 0 {
			config.Sensor.File.Path = DefaultThermalZonePath
		}
		if config.Sensor.File.Divisor == 0 {
			config.Sensor.File.Divisor = DefaultThermalZoneDivisor
		}
	}
	if len(config.Sensor.ID) <= 0 {
		config.Sensor.ID = "cpu"
	}

	if config.Fan.Emc2301 == nil && config.Fan.File == nil {
		config.Fan.Emc2301 = &Emc2301FanConfig{}
	}
	if len(config.Fan.ID) <= 0 {
		config.Fan.ID = "fan"
	}
}
