// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/getids/internal/secrets"
	"github.com/pdiddy/getids/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "getids/0.1"
	defaultMaxRetries = 5
)

// envKeyReplacer maps nested keys to env names: collect.class -> GETIDS_COLLECT_CLASS.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// bindConfig registers defaults and binds flags to viper keys. It runs once
// all commands have defined their flags.
func bindConfig() {
	viper.SetDefault("collect.class", types.DefaultClass)
	viper.SetDefault("collect.format", string(types.OutputText))
	viper.SetDefault("collect.timeout", defaultTimeout)
	viper.SetDefault("collect.user_agent", defaultUserAgent)
	viper.SetDefault("collect.max_retries", defaultMaxRetries)
	viper.SetDefault("history.max_results", 20)

	root := rootCmd.PersistentFlags()
	mustBind("verbose", root.Lookup("verbose"))
	mustBind("secrets_dir", root.Lookup("secrets-dir"))
	mustBind("history.dir", root.Lookup("history-dir"))

	f := collectCmd.Flags()
	mustBind("collect.class", f.Lookup("class"))
	mustBind("collect.selector", f.Lookup("selector"))
	mustBind("collect.format", f.Lookup("format"))
	mustBind("collect.unique", f.Lookup("unique"))
	mustBind("collect.trim_space", f.Lookup("trim"))
	mustBind("collect.record", f.Lookup("record"))
	mustBind("collect.timeout", f.Lookup("timeout"))
	mustBind("collect.user_agent", f.Lookup("user-agent"))
	mustBind("collect.max_retries", f.Lookup("max-retries"))
}

// mustBind binds a viper key to a flag. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// collectConfig assembles the collect settings from flags, environment,
// config file, and defaults, in that order of precedence.
func collectConfig() (types.CollectConfig, error) {
	cfg := types.CollectConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("collect.timeout"),
			UserAgent:  viper.GetString("collect.user_agent"),
			MaxRetries: viper.GetInt("collect.max_retries"),
			Headers:    secrets.Headers(loadedSecrets),
		},
		Class:     strings.TrimSpace(viper.GetString("collect.class")),
		Selector:  strings.TrimSpace(viper.GetString("collect.selector")),
		Format:    types.OutputFormat(viper.GetString("collect.format")),
		Unique:    viper.GetBool("collect.unique"),
		TrimSpace: viper.GetBool("collect.trim_space"),
		Record:    viper.GetBool("collect.record"),
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if !cfg.Format.Valid() {
		return cfg, fmt.Errorf("unsupported format %q: use text, json, yaml, or lines", cfg.Format)
	}
	return cfg, nil
}

// historyConfig assembles the history store settings.
func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}
