package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

// Chip is a hwmon device providing at least one temperature input
type Chip struct {
	Name  string
	Path  string
	Temps []*TempInput
}

// TempInput is a single temperature input of a Chip
type TempInput struct {
	// Index of this input on its chip, starting at 1
	Index int
	Label string
	// Input is the sysfs file holding the value in milli-degrees celsius
	Input string
	// Value is the value in degrees celsius at the time of detection
	Value float64
}

// GetChips detects all chips with temperature inputs using lm-sensors
func GetChips() []*Chip {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*Chip
	for _, chip := range chips {
		temps := getTempInputs(chip)
		if len(temps) <= 0 {
			continue
		}

		list = append(list, &Chip{
			Name:  computeIdentifier(chip),
			Path:  chip.Path,
			Temps: temps,
		})
	}

	return list
}

func getTempInputs(chip gosensors.Chip) []*TempInput {
	var result []*TempInput

	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		input, ok := findSubFeature(feature.GetSubFeatures(), gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}

		result = append(result, &TempInput{
			Index: len(result) + 1,
			Label: getLabel(chip.Path, input.Name),
			Input: filepath.Join(chip.Path, input.Name),
			Value: input.GetValue(),
		})
	}

	return result
}

// FindTempInput returns the sysfs input path of the temperature input at the given index
// of the first chip whose name matches the platform regex.
func FindTempInput(chips []*Chip, platform string, index int) (string, error) {
	platformRegex, err := regexp.Compile(platform)
	if err != nil {
		return "", fmt.Errorf("invalid platform pattern '%s': %w", platform, err)
	}

	for _, chip := range chips {
		if !platformRegex.MatchString(chip.Name) {
			continue
		}
		for _, temp := range chip.Temps {
			if temp.Index == index {
				return temp.Input, nil
			}
		}
	}

	return "", fmt.Errorf("no hwmon sensor matched platform '%s' and index %d", platform, index)
}

func findSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == input {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = input
	}
	return label
}

// getDeviceName reads the name of a device
func getDeviceName(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "name"))
	name := strings.TrimSpace(string(content))
	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}
	return name
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = getDeviceName(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%x%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%x%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}
