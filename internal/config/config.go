// Package config loads tool defaults from an optional config file and
// DIRSCOPE_* environment variables. Command-line flags override whatever
// is loaded here.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the user-tunable scanner and export settings.
type Config struct {
	// Scan settings
	Exclude []string `mapstructure:"exclude"` // regex patterns to skip
	Probe   string   `mapstructure:"probe"`   // auto, mdls, xattr, none

	// Export settings
	Format string `mapstructure:"format"` // xlsx, csv, sqlite
	Sheet  string `mapstructure:"sheet"`  // worksheet title for xlsx

	// CLI settings
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
	Verbose          bool          `mapstructure:"verbose"`
}

// Load reads configuration from defaults, an optional config file
// (./dirscope.yaml or ~/.config/dirscope/dirscope.yaml), and the
// environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("exclude", []string{`/\.Trash(/|$)`, `(/|^)\.fseventsd(/|$)`})
	v.SetDefault("probe", "auto")
	v.SetDefault("format", "xlsx")
	v.SetDefault("sheet", "Directory Info")
	v.SetDefault("progress_interval", 30*time.Second)
	v.SetDefault("verbose", false)

	v.SetConfigName("dirscope")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/dirscope")

	v.SetEnvPrefix("DIRSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real
		// problem worth surfacing.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
