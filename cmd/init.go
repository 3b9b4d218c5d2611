package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a pin file for a new client pack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pinsPath := viper.GetString("pins-file")
		if filepath.Ext(pinsPath) == ".env" || filepath.Base(pinsPath) == ".env" {
			cmdshared.ExitWithError(&core.ConfigError{Field: "pins-file", Reason: "init only creates TOML pin files"})
		}
		_, err := os.Stat(pinsPath)
		if err == nil {
			if !viper.GetBool("init.reinit") && !cmdshared.PromptYesNo(pinsPath+" already exists, overwrite it? [y/N] ", false) {
				fmt.Println("Cancelled!")
				return
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			cmdshared.ExitWithError(fmt.Errorf("failed to check pin file: %w", err))
		}

		// Get current file directory name
		directoryName := "."
		if wd, err := os.Getwd(); err == nil {
			directoryName = filepath.Base(wd)
		}

		slug := viper.GetString("init.slug")
		if len(slug) == 0 {
			def := ""
			if directoryName != "." && len(directoryName) > 0 {
				def = strings.ToLower(strings.Join(strings.Fields(directoryName), "-"))
			}
			slug = cmdshared.ReadValue("Pack slug ["+def+"]: ", def)
		}

		name := viper.GetString("init.name")
		if len(name) == 0 {
			def := cmdshared.TitleFromName(slug)
			name = cmdshared.ReadValue("Pack name ["+def+"]: ", def)
		}

		mcVersions, err := cmdshared.GetValidMCVersions(cmd.Context(), core.NewHTTPClient(viper.GetDuration("timeout")))
		if err != nil {
			cmdshared.ExitWithError(fmt.Errorf("failed to get latest minecraft versions: %w", err))
		}
		mcVersion := viper.GetString("init.mc-version")
		if len(mcVersion) == 0 {
			latestVersion := mcVersions.Latest.Release
			if viper.GetBool("init.latest") {
				mcVersion = latestVersion
			} else {
				mcVersion = cmdshared.ReadValue("Minecraft version ["+latestVersion+"]: ", latestVersion)
			}
		}
		if err := mcVersions.CheckValid(mcVersion); err != nil {
			cmdshared.ExitWithError(err)
		}

		loaderName := strings.ToLower(viper.GetString("init.loader"))
		if len(loaderName) == 0 {
			loaderName = strings.ToLower(cmdshared.ReadValue("Mod loader ["+core.DefaultLoader+"]: ", core.DefaultLoader))
		}
		if _, ok := core.ModLoaders[loaderName]; !ok {
			keys := make([]string, 0, len(core.ModLoaders))
			for k := range core.ModLoaders {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			cmdshared.ExitWithError(&core.ConfigError{Field: "loader",
				Reason: fmt.Sprintf("unsupported mod loader %q, supported loaders are %s", loaderName, strings.Join(keys, ", "))})
		}

		pins := core.PinFile{
			Name:        name,
			Slug:        slug,
			GameVersion: mcVersion,
			Loader:      loaderName,
			Mods:        map[string]string{},
		}
		if err := core.ValidateSlug(slug); err != nil {
			cmdshared.ExitWithError(err)
		}
		pins.SetPath(pinsPath)
		if err := pins.Write(); err != nil {
			cmdshared.ExitWithError(err)
		}
		fmt.Println(pinsPath + " created! Use 'clientpack pin <mod> <version>' to add mods.")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("name", "", "The name of the pack (if not set, it will be asked for)")
	initCmd.Flags().String("slug", "", "The slug of the pack, used in its version ID and file names (if not set, it will be asked for)")
	initCmd.Flags().String("mc-version", "", "The Minecraft version to use (if not set, it will be asked for)")
	initCmd.Flags().BoolP("latest", "l", false, "Automatically select the latest release of Minecraft")
	initCmd.Flags().String("loader", "", "The mod loader to use (fabric or quilt, if not set, it will be asked for)")
	initCmd.Flags().BoolP("reinit", "r", false, "Overwrite an existing pin file without asking")
	cmdshared.BindFlags("init.", initCmd.Flags())
}
