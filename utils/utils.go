package utils

import (
	"github.com/packwiz/clientpack/cmd"
	"github.com/spf13/cobra"
)

// utilsCmd represents the base command when called without any subcommands
var utilsCmd = &cobra.Command{
	Use:   "utils",
	Short: "Utilities for working with clientpack itself",
}

func init() {
	cmd.Add(utilsCmd)
}
