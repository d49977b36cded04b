// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the getids CLI. getids collects the id
// attribute of every element carrying a class in an HTML document and prints
// the list.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/getids/internal/logger"
	"github.com/pdiddy/getids/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the getids CLI.
var rootCmd = &cobra.Command{
	Use:   "getids",
	Short: "Collect element ids by class from HTML documents",
	Long: `getids reads HTML documents from files, glob patterns, URLs, or stdin,
selects every element carrying a class (default "card"), and prints the list
of their id attributes in document order. Elements without an id, or with an
empty one, are skipped.

Collections can be recorded to a local history database and listed or
exported later with the history subcommand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(viper.GetBool("verbose"))

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets: %v", keys)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./getids.yaml or ~/.config/getids/getids.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory holding http-cookie / http-authorization files")
	rootCmd.PersistentFlags().String("history-dir", ".getids", "directory holding the history database and exports")
}

func initConfig() {
	bindConfig()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("getids")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "getids"))
		}
	}

	viper.SetEnvPrefix("GETIDS")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logger.Warn("reading config %s: %v", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
