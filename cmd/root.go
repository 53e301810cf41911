// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/microgrid-exchange/microgrid-cli/cmd/agreementcmd"
	"github.com/microgrid-exchange/microgrid-cli/cmd/artifactcmd"
	"github.com/microgrid-exchange/microgrid-cli/cmd/configcmd"
	"github.com/microgrid-exchange/microgrid-cli/cmd/contractcmd"
	"github.com/microgrid-exchange/microgrid-cli/cmd/exchangecmd"
	"github.com/microgrid-exchange/microgrid-cli/cmd/keycmd"
	"github.com/microgrid-exchange/microgrid-cli/cmd/migratecmd"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/config"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	app *application.Microgrid

	logLevel    string
	cfgFile     string
	rpcURL      string
	buildDir    string
	gasLimit    uint64
	skipConfirm bool

	Version = ""
)

// flags that override config values when set
var boundFlags = map[string]string{
	"rpc":          constants.ConfigRPCURLKey,
	"build-dir":    constants.ConfigBuildDirKey,
	"gas-limit":    constants.ConfigGasLimitKey,
	"skip-confirm": constants.ConfigSkipConfirm,
}

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "microgrid",
		Long: `Microgrid CLI deploys and operates the contracts of a community energy
microgrid: the MicrogridExchange, where producers and consumers trade watt hours,
and the OperatorsAgreement, where grid operators whitelist metered assets.

To get started, compile the contracts with truffle and run

  microgrid migrate --dev-key

against a local development chain.`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.microgrid/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.DefaultLogLevel, "log level for the application")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", constants.DefaultRPCURL, "rpc endpoint of the target chain")
	rootCmd.PersistentFlags().StringVar(&buildDir, "build-dir", constants.DefaultBuildDir, "directory holding the compiled contract artifacts")
	rootCmd.PersistentFlags().Uint64Var(&gasLimit, "gas-limit", constants.DefaultGasLimit, "gas limit for deployments (0 estimates it)")
	rootCmd.PersistentFlags().BoolVar(&skipConfirm, "skip-confirm", false, "do not ask for confirmation before sending transactions")

	app = application.New()
	rootCmd.AddCommand(migratecmd.NewCmd(app))
	rootCmd.AddCommand(contractcmd.NewCmd(app))
	rootCmd.AddCommand(artifactcmd.NewCmd(app))
	rootCmd.AddCommand(exchangecmd.NewCmd(app))
	rootCmd.AddCommand(agreementcmd.NewCmd(app))
	rootCmd.AddCommand(keycmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app))

	cobrautils.ConfigureRootCmd(rootCmd)
	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}
	cf := config.New()
	cf.SetConfig(log, configPath(baseDir))
	if cfgFile == "" && utils.FileExists(afero.NewOsFs(), constants.ProjectConfigFileName) {
		// project settings override the user ones
		cf.MergeConfig(log, constants.ProjectConfigFileName)
	}
	for flagName, key := range boundFlags {
		if err := cf.BindFlag(key, cmd.Root().PersistentFlags().Lookup(flagName)); err != nil {
			return fmt.Errorf("failed binding flag %s: %w", flagName, err)
		}
	}
	app.Setup(baseDir, log, cf, prompts.NewPrompter(), afero.NewOsFs())
	log.Info("starting command", zap.String("command", cmd.CommandPath()))
	return nil
}

func configPath(baseDir string) string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(baseDir, constants.ConfigFileName)
}

func setupEnv() (string, error) {
	// Set base dir
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)

	// Create base dir if it doesn't exist
	err = os.MkdirAll(baseDir, os.ModePerm)
	if err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (logging.Logger, error) {
	var err error

	config := logging.Config{}
	config.LogLevel = logging.Info
	config.DisplayLevel, err = logging.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level configured: %s", logLevel)
	}
	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, constants.DefaultPerms755); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = logging.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	factory := logging.NewFactory(config)
	log, err := factory.Make(constants.CLILogName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	// create the user facing logger as a global var
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	cobrautils.HandleErrors(err)
}
