package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level wrapped configuration.
type Config struct {
	DataDirs []string     `mapstructure:"data_dirs"`
	Remotes  []RemoteHost `mapstructure:"remotes"`
	SSH      SSH          `mapstructure:"ssh"`
	Output   Output       `mapstructure:"output"`
}

// RemoteHost describes one remote machine whose Claude data is merged into
// the yearly summary.
type RemoteHost struct {
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Port     int    `mapstructure:"port"`
	Identity string `mapstructure:"identity"`
}

// UserAtHost returns the ssh destination for the host ("user@host" or "host").
func (h RemoteHost) UserAtHost() string {
	if h.User == "" {
		return h.Host
	}
	return h.User + "@" + h.Host
}

// Label returns the display name for the host, preferring the configured name.
func (h RemoteHost) Label() string {
	if h.Name != "" {
		return h.Name
	}
	return h.UserAtHost()
}

// SSH holds remote transport settings.
type SSH struct {
	ConnectTimeout int `mapstructure:"connect_timeout"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dirs", DefaultDataDirs)
	v.SetDefault("ssh.connect_timeout", DefaultSSHConnectTimeout)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	for i, p := range cfg.DataDirs {
		cfg.DataDirs[i] = expandPath(p)
	}
	for i := range cfg.Remotes {
		cfg.Remotes[i].Identity = expandPath(cfg.Remotes[i].Identity)
	}
	if cfg.SSH.ConnectTimeout <= 0 {
		cfg.SSH.ConnectTimeout = DefaultSSHConnectTimeout
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite snapshot database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}
