package fan

import (
	"github.com/markusressel/emcfan/cmd/global"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/fans"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

// getFan creates the configured fan without running its initialization sequence
func getFan() (fans.Fan, error) {
	global.LoadConfig()

	return fans.NewFan(configuration.CurrentConfig.Fan)
}

func closeFan(fan fans.Fan, err *error) {
	global.Close(fan, "fan "+fan.GetId(), err)
}
