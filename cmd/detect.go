package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markusressel/emcfan/cmd/global"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/fans"
	"github.com/markusressel/emcfan/internal/hwmon"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/spf13/cobra"
)

var detectAddress int

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all i2c buses, EMC2301 chips and temperature sensors and prints them as a list`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		address := detectAddress

		buses, err := fans.ListBuses()
		if err != nil {
			ui.Warning("%v", err)
		}

		// === Print detected devices ===
		ui.Printfln("> i2c")
		var busRows [][]string
		for _, bus := range buses {
			busRows = append(busRows, []string{
				"", strconv.Itoa(bus.Number), bus.Name, strings.Join(bus.Aliases, ", "), probe(bus, address),
			})
		}
		busHeaders := []string{"", "Number", "Name", "Aliases", fmt.Sprintf("EMC2301 @ 0x%02X", address)}
		if err := global.PrintTable(busHeaders, busRows); err != nil {
			return err
		}

		for _, chip := range hwmon.GetChips() {
			ui.Printfln("> %s", chip.Name)

			var sensorRows [][]string
			for _, temp := range chip.Temps {
				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(temp.Index), temp.Label, fmt.Sprintf("%.1f", temp.Value), temp.Input,
				})
			}
			sensorHeaders := []string{"Sensors", "Index", "Label", "Value (°C)", "Input"}
			if err := global.PrintTable(sensorHeaders, sensorRows); err != nil {
				return err
			}
		}

		return nil
	},
}

func probe(bus fans.BusInfo, address int) string {
	i2cBus, err := fans.NewI2cBus(strconv.Itoa(bus.Number), address)
	if err != nil {
		return "N/A"
	}
	defer func() {
		_ = i2cBus.Close()
	}()

	found, err := fans.Probe(i2cBus)
	if err != nil {
		return "-"
	}
	return strconv.FormatBool(found)
}

func init() {
	detectCmd.Flags().IntVarP(&detectAddress, "address", "a", configuration.DefaultEmc2301Address, "i2c address to probe for an EMC2301")
	rootCmd.AddCommand(detectCmd)
}
