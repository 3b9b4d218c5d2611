package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/packwiz/clientpack/cmdshared"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var completionFiles = map[string]string{
	"bash":       "completion.sh",
	"fish":       "completion.fish",
	"powershell": "completion.ps1",
	"zsh":        "completion.zsh",
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash/fish/powershell/zsh]",
	Short: "Generates shell completion scripts",
	Long: `Generates a shell completion script, printing it or saving it in the clientpack config directory.
Source the saved file from your shell profile to load the completions.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "fish", "powershell", "zsh"},
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("utils.completion.source") {
			if err := genCompletion(cmd.Root(), args[0], os.Stdout); err != nil {
				cmdshared.ExitWithError(fmt.Errorf("error generating completion file: %w", err))
			}
			return
		}

		file, err := getConfigPath(completionFiles[args[0]])
		if err != nil {
			cmdshared.ExitWithError(fmt.Errorf("error saving completion file: %w", err))
		}
		f, err := os.Create(file)
		if err != nil {
			cmdshared.ExitWithError(fmt.Errorf("error saving completion file: %w", err))
		}
		err = genCompletion(cmd.Root(), args[0], f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			cmdshared.ExitWithError(fmt.Errorf("error saving completion file: %w", err))
		}
		fmt.Println("Completions saved to " + file)
		fmt.Println("Source this file from your shell profile to load them.")
	},
}

func genCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	case "zsh":
		return root.GenZshCompletion(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}

func getConfigPath(fileName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "clientpack")
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func init() {
	utilsCmd.AddCommand(completionCmd)

	completionCmd.Flags().Bool("source", false, "Print the completion script instead of saving it")
	cmdshared.BindFlags("utils.completion.", completionCmd.Flags())
}
