// Package config wires Viper to the command line, the environment and the
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"volumetric/internal/backend"
	"volumetric/internal/dirs"
	"volumetric/internal/toast"
)

// Keys.
const (
	KeyBackendURL    = "backend_url"
	KeyVerbose       = "verbose"
	KeyLogFile       = "log_file"
	KeyToastDuration = "toast_duration"
)

// Settings is the resolved configuration.
type Settings struct {
	BackendURL    string
	Verbose       bool
	LogFile       string
	ToastDuration time.Duration
}

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: a missing config file is not an error.
func Init(root *cobra.Command) error {
	_ = dirs.EnsureAll()

	viper.AddConfigPath(dirs.ConfigDir())
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: VOLUMETRIC_*
	viper.SetEnvPrefix("VOLUMETRIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyBackendURL, backend.DefaultBaseURL)
	viper.SetDefault(KeyToastDuration, toast.DisplayDuration)

	pf := root.PersistentFlags()
	_ = viper.BindPFlag(KeyBackendURL, pf.Lookup("backend-url"))
	_ = viper.BindPFlag(KeyVerbose, pf.Lookup("verbose"))
	_ = viper.BindPFlag(KeyLogFile, pf.Lookup("log-file"))
	_ = viper.BindPFlag(KeyToastDuration, pf.Lookup("toast-duration"))

	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load resolves the current settings (flag > env > file > default).
func Load() Settings {
	s := Settings{
		BackendURL:    viper.GetString(KeyBackendURL),
		Verbose:       viper.GetBool(KeyVerbose),
		LogFile:       viper.GetString(KeyLogFile),
		ToastDuration: viper.GetDuration(KeyToastDuration),
	}
	if s.BackendURL == "" {
		s.BackendURL = backend.DefaultBaseURL
	}
	if s.ToastDuration <= 0 {
		s.ToastDuration = toast.DisplayDuration
	}
	return s
}
