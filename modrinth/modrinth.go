package modrinth

import (
	"github.com/packwiz/clientpack/cmd"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var modrinthCmd = &cobra.Command{
	Use:     "modrinth",
	Aliases: []string{"mr"},
	Short:   "Build client packs from Modrinth mods",
}

func init() {
	cmd.Add(modrinthCmd)

	modrinthCmd.PersistentFlags().String("api-url", DefaultAPIURL, "The base URL of the Modrinth API")
	_ = viper.BindPFlag("modrinth.api-url", modrinthCmd.PersistentFlags().Lookup("api-url"))
}

func newDefaultRegistry() (Registry, error) {
	return NewRegistry(viper.GetString("modrinth.api-url"), core.NewHTTPClient(viper.GetDuration("timeout")))
}
