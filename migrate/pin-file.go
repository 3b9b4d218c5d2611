package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pinFileCommand = &cobra.Command{
	Use:   "pin-file [destination]",
	Short: "Convert a .env pin file to the TOML format",
	Long: `Read the configured .env pin file (GENERATED_MC_VERSION and the slug:version list) and write it as a
TOML pin file, by default pins.toml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source := viper.GetString("pins-file")
		if filepath.Ext(source) != ".env" && filepath.Base(source) != ".env" {
			cmdshared.ExitWithError(&core.ConfigError{Field: "pins-file", Reason: source + " is not a .env pin file, pass it with --pins-file"})
		}
		pins, err := cmdshared.LoadPins()
		if err != nil {
			cmdshared.ExitWithError(err)
		}

		dest := "pins.toml"
		if len(args) > 0 {
			dest = args[0]
		}
		if _, err := os.Stat(dest); err == nil {
			if !cmdshared.PromptYesNo(dest+" already exists, overwrite it? [y/N] ", false) {
				fmt.Println("Cancelled!")
				return
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			cmdshared.ExitWithError(fmt.Errorf("failed to check %s: %w", dest, err))
		}

		if pins.Loader == "" {
			pins.Loader = core.DefaultLoader
		}
		pins.SetPath(dest)
		if err := pins.Write(); err != nil {
			cmdshared.ExitWithError(err)
		}
		fmt.Printf("Converted %d pins from %s to %s\n", len(pins.Mods), source, dest)
	},
}

func init() {
	migrateCmd.AddCommand(pinFileCommand)
}
