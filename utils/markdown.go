package utils

import (
	"fmt"
	"os"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
)

// markdownCmd represents the markdown command
var markdownCmd = &cobra.Command{
	Use:     "markdown",
	Short:   "Generate markdown documentation for every command",
	Aliases: []string{"md"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		outDir := viper.GetString("utils.markdown.dir")
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			cmdshared.ExitWithError(fmt.Errorf("error creating directory: %w", err))
		}
		root := cmd.Root()
		root.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(root, outDir); err != nil {
			cmdshared.ExitWithError(fmt.Errorf("error generating markdown: %w", err))
		}
		fmt.Println("Generated markdown in " + outDir)
	},
}

func init() {
	utilsCmd.AddCommand(markdownCmd)

	markdownCmd.Flags().String("dir", ".", "The destination directory to save docs in")
	cmdshared.BindFlags("utils.markdown.", markdownCmd.Flags())
}
