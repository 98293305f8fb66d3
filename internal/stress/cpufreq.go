package stress

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/emcfan/internal/util"
)

const (
	DefaultScalingFrequencyPath = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq"

	vcgencmdTimeout = 2 * time.Second
)

// FrequencyReader returns the current cpu frequency in MHz
type FrequencyReader func() (float64, error)

// NewFrequencyReader reads the cpufreq scaling frequency and falls back to
// "vcgencmd measure_clock arm" if it is not available.
func NewFrequencyReader(scalingPath string) FrequencyReader {
	return func() (float64, error) {
		khz, err := util.ReadFloatFromFile(scalingPath)
		if err == nil {
			return khz / 1000, nil
		}

		out, cmdErr := util.CmdExecution("vcgencmd", []string{"measure_clock", "arm"}, vcgencmdTimeout)
		if cmdErr != nil {
			return 0, fmt.Errorf("unable to read cpu frequency: %v, %w", err, cmdErr)
		}
		return parseMeasureClock(out)
	}
}

// parseMeasureClock parses output like "frequency(48)=1500398464" into MHz
func parseMeasureClock(out string) (float64, error) {
	_, value, found := strings.Cut(strings.TrimSpace(out), "=")
	if !found {
		return 0, fmt.Errorf("unexpected vcgencmd output: %s", out)
	}
	hz, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected vcgencmd output: %s", out)
	}
	return hz / 1000000, nil
}
