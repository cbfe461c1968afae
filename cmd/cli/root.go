package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
)

// newRootCmd builds the walletctl command tree. Settings resolve from flags,
// then WALLETCTL_* environment variables, then ~/.walletctl.yaml.
func newRootCmd(out io.Writer, v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "walletctl",
		Short:         "walletctl talks to the gowallet API",
		Long:          `A command line interface for creating wallets, moving funds and auditing the ledger.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default $HOME/.walletctl.yaml)")
	rootCmd.PersistentFlags().String("server", defaultServer, "Base URL of the gowallet API")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "Request timeout")
	_ = v.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	client := func() *apiClient {
		return newAPIClient(v.GetString("server"), v.GetDuration("timeout"))
	}

	rootCmd.AddCommand(
		newWalletCmd(out, client),
		newDepositCmd(out, client),
		newWithdrawCmd(out, client),
		newTransferCmd(out, client),
		newHistoryCmd(out, client),
		newReconcileCmd(out, client),
		newConsistencyCmd(out, client),
		newHealthCmd(out, client),
	)

	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("WALLETCTL")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.SetConfigFile(filepath.Join(home, ".walletctl.yaml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found", cfgFile)
			}
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}
