package cmd

import (
	"fmt"
	"strings"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
)

// pinCmd represents the pin command
var pinCmd = &cobra.Command{
	Use:     "pin <mod> <version>",
	Short:   "Pin a mod to a version",
	Long:    "Pin a Modrinth project (slug or ID) to a version (version ID or version number), replacing an existing pin",
	Aliases: []string{"add"},
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		modID, version := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
		if err := core.ValidatePin(core.Pin{ModID: modID, Version: version}); err != nil {
			cmdshared.ExitWithError(err)
		}
		pins, err := cmdshared.LoadPins()
		if err != nil {
			cmdshared.ExitWithError(err)
		}

		old, existed := pins.Mods[modID]
		pins.Mods[modID] = version
		if err := pins.Write(); err != nil {
			cmdshared.ExitWithError(err)
		}
		if existed && old != version {
			fmt.Printf("%s repinned from %s to %s\n", modID, old, version)
		} else {
			fmt.Printf("%s pinned to %s\n", modID, version)
		}
	},
}

// unpinCmd represents the unpin command
var unpinCmd = &cobra.Command{
	Use:     "unpin <mod>",
	Short:   "Remove a mod from the pin file",
	Aliases: []string{"remove", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modID := strings.TrimSpace(args[0])
		pins, err := cmdshared.LoadPins()
		if err != nil {
			cmdshared.ExitWithError(err)
		}
		if _, ok := pins.Mods[modID]; !ok {
			reason := modID + " is not pinned"
			pinned := make([]string, 0, len(pins.Mods))
			for k := range pins.Mods {
				pinned = append(pinned, k)
			}
			if suggestions := cmdshared.SuggestNames(modID, pinned); len(suggestions) > 0 {
				reason += ", did you mean " + strings.Join(suggestions, " or ") + "?"
			}
			cmdshared.ExitWithError(&core.ConfigError{Field: "mods", Reason: reason})
		}
		delete(pins.Mods, modID)
		if err := pins.Write(); err != nil {
			cmdshared.ExitWithError(err)
		}
		fmt.Printf("%s unpinned\n", modID)
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}
