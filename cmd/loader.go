package cmd

import (
	"fmt"
	"strings"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loaderCmd represents the loader command
var loaderCmd = &cobra.Command{
	Use:   "loader [game-version]",
	Short: "Show the loader version an export would use",
	Long: `Resolve the loader version for a Minecraft version (by default the one in the pin file), and show
which meta server tiers were tried`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		gameVersion := ""
		loaderName := viper.GetString("loader.loader")
		if len(args) > 0 {
			gameVersion = args[0]
		} else {
			pins, err := cmdshared.LoadPins()
			if err != nil {
				cmdshared.ExitWithError(err)
			}
			gameVersion = strings.TrimSpace(pins.GameVersion)
			if loaderName == "" {
				loaderName = pins.Loader
			}
		}
		if gameVersion == "" {
			cmdshared.ExitWithError(&core.ConfigError{Field: "game-version", Reason: "no Minecraft version specified"})
		}

		loaderName = strings.ToLower(strings.TrimSpace(loaderName))
		if loaderName == "" {
			loaderName = core.DefaultLoader
		}
		loader, ok := core.ModLoaders[loaderName]
		if !ok {
			cmdshared.ExitWithError(&core.ConfigError{Field: "loader", Reason: fmt.Sprintf("unsupported mod loader %q", loaderName)})
		}

		sel := core.LoaderResolver{
			Loader: loader,
			Client: core.NewHTTPClient(viper.GetDuration("timeout")),
		}.Resolve(cmd.Context(), gameVersion)

		for _, attempt := range sel.Attempts {
			switch {
			case attempt.Tier == core.TierFallback:
				fmt.Printf("%-12s using last known good version\n", attempt.Tier)
			case attempt.Err != nil:
				fmt.Printf("%-12s %s: %v\n", attempt.Tier, attempt.URL, attempt.Err)
			default:
				fmt.Printf("%-12s %s: %d candidates\n", attempt.Tier, attempt.URL, attempt.Candidates)
			}
		}
		fmt.Printf("%s %s for Minecraft %s (%s)\n", sel.Loader.FriendlyName, sel.Version, gameVersion, sel.Tier)
	},
}

func init() {
	rootCmd.AddCommand(loaderCmd)
	loaderCmd.Flags().String("loader", "", "The mod loader to resolve (fabric or quilt), defaults to the pin file's loader")
	cmdshared.BindFlags("loader.", loaderCmd.Flags())
}
