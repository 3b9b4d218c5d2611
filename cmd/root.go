package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/packwiz/clientpack/cmdshared"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clientpack",
	Short: "A command line tool for exporting client-only Modrinth modpacks from pinned mod versions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if viper.GetBool("verbose") {
			level = log.DebugLevel
		}
		logger := core.NewLogger(os.Stderr, level)
		cmd.SetContext(core.WithLogger(cmd.Context(), logger))
	},
	SilenceUsage: true,
}

// Execute starts the root command for clientpack
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		cmdshared.ExitWithError(err)
	}
}

// Add adds a new command as a subcommand to clientpack
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("pins-file", "pins.toml", "The pin file to use (a .env file is read in the legacy format)")
	rootCmd.PersistentFlags().String("env-key", core.DefaultEnvModsKey, "The key holding the pinned mods in a .env pin file")
	rootCmd.PersistentFlags().Duration("timeout", core.DefaultTimeout, "The timeout of each HTTP request")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Don't prompt, use the default answer for every question")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every request and resolution step")
	cmdshared.BindFlags("", rootCmd.PersistentFlags())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.clientpack.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			cmdshared.ExitWithError(err)
		}

		// Search config in home directory with name ".clientpack" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".clientpack")
		viper.SetConfigType("toml")
	}

	// e.g. CLIENTPACK_MODRINTH_EXPORT_WORKERS
	viper.SetEnvPrefix("clientpack")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
