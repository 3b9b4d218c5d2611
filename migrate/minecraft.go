package migrate

import (
	"fmt"
	"strings"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var minecraftCommand = &cobra.Command{
	Use:     "minecraft [version]",
	Short:   "Migrate your pin file to another Minecraft version",
	Long:    "Change the Minecraft version of the pin file. Pinned mod versions are kept, so check that they support the new version.",
	Aliases: []string{"mc"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pins, err := cmdshared.LoadPins()
		if err != nil {
			cmdshared.ExitWithError(err)
		}
		wantedMCVersion := strings.TrimSpace(args[0])
		if wantedMCVersion == pins.GameVersion {
			fmt.Printf("Minecraft version is already %s!\n", wantedMCVersion)
			return
		}
		mcVersions, err := cmdshared.GetValidMCVersions(cmd.Context(), core.NewHTTPClient(viper.GetDuration("timeout")))
		if err != nil {
			cmdshared.ExitWithError(fmt.Errorf("error getting Minecraft versions: %w", err))
		}
		if err := mcVersions.CheckValid(wantedMCVersion); err != nil {
			cmdshared.ExitWithError(err)
		}

		previous := pins.GameVersion
		pins.GameVersion = wantedMCVersion
		if err := pins.Write(); err != nil {
			cmdshared.ExitWithError(err)
		}
		fmt.Printf("Successfully updated Minecraft version from %s to %s\n", previous, wantedMCVersion)
		if len(pins.Mods) > 0 {
			fmt.Printf("%d mods are still pinned to versions chosen for %s, use 'clientpack pin' to update them\n", len(pins.Mods), previous)
		}
	},
}

func init() {
	migrateCmd.AddCommand(minecraftCommand)
}
