package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alfurqan/aidctl/cmd/imports"
	"github.com/alfurqan/aidctl/cmd/list"
	"github.com/alfurqan/aidctl/cmd/login"
	"github.com/alfurqan/aidctl/cmd/rm"
	"github.com/alfurqan/aidctl/cmd/set"
	"github.com/alfurqan/aidctl/cmd/show"
	"github.com/alfurqan/aidctl/cmd/sync"
	"github.com/alfurqan/aidctl/cmd/watch"
	"github.com/alfurqan/aidctl/internal/pkg/cmdutil"
	"github.com/alfurqan/aidctl/internal/pkg/config"
	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/signals"
	"github.com/alfurqan/aidctl/internal/pkg/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "aidctl",
	Short:   "aidctl manages neighbourhood aid records",
	Long:    "aidctl keeps the household, aid, child benefit and ledger records of a relief committee\nin sync with its backend.",
	Version: version.GetShortVersion(),
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	cleanup := signals.SetupHandler(ctx, cancel)
	err := rootCmd.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		os.Exit(cmdutil.ExitGeneralError)
	}
}

func addSubCommandPalattes(root *cobra.Command) {
	root.AddCommand(login.LoginCmd)
	root.AddCommand(login.LogoutCmd)
	root.AddCommand(list.ListCmd)
	root.AddCommand(imports.ImportCmd)
	root.AddCommand(set.SetCmd)
	root.AddCommand(rm.RmCmd)
	root.AddCommand(show.ShowCmd)
	root.AddCommand(sync.SyncCmd)
	root.AddCommand(watch.WatchCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	logger.Initialize()

	addSubCommandPalattes(rootCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aidctl.yaml)")
	flags.String("api", "", "backend URL (default $AIDCTL_API_URL or the hosted backend)")
	flags.StringP("output", "o", "", "output format: json or table (default: table on a terminal, json when piped)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("state-dir", "", "directory holding the session database")

	bindPersistentFlags()
}

func bindPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag(cmdutil.KeyAPIURL, flags.Lookup("api"))
	_ = viper.BindPFlag(cmdutil.KeyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(cmdutil.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(cmdutil.KeyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(cmdutil.KeyStateDir, flags.Lookup("state-dir"))
}

func initConfig() {
	// Bindings are re-applied in case the viper instance was reset
	bindPersistentFlags()

	env, err := config.ParseEnv()
	if err != nil {
		cmdutil.OutputError(err, cmdutil.ExitValidationError)
		return
	}
	cmdutil.SetDefaults(env)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aidctl")
	}

	configErr := viper.ReadInConfig()

	if err := logger.Configure(logger.Options{
		Level:  viper.GetString(cmdutil.KeyLogLevel),
		Format: viper.GetString(cmdutil.KeyLogFormat),
	}); err != nil {
		cmdutil.OutputError(err, cmdutil.ExitValidationError)
		return
	}

	switch {
	case configErr == nil:
		logger.Debug("Using config file", "path", viper.ConfigFileUsed())
	case cfgFile != "":
		cmdutil.OutputError(fmt.Errorf("read config %s: %w", cfgFile, configErr), cmdutil.ExitValidationError)
	}
}
