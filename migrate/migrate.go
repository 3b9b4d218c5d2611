package migrate

import (
	"github.com/packwiz/clientpack/cmd"
	"github.com/spf13/cobra"
)

// migrateCmd represents the base command when called without any subcommands
var migrateCmd = &cobra.Command{
	Use:   "migrate [minecraft|pin-file]",
	Short: "Migrate your pin file to a newer Minecraft version or to the TOML format",
}

func init() {
	cmd.Add(migrateCmd)
}
