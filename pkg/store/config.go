package store

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names a persistence implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
)

// Config locates and configures persistence.
type Config interface {
	BasePath() string
	Backend() Backend
	LogLevel() string
	Palette() []string
}

// LoadConfig reads the optional .daybook config file and DAYBOOK_ environment.
// The file is searched in $DAYBOOK_CONFIG_PATH, the working directory and $HOME.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.daybook.db")
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("log_level", "info")
	v.SetDefault("palette", []string{})
	v.SetConfigName(".daybook") // extension is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	backend := Backend(strings.ToLower(strings.TrimSpace(v.GetString("backend"))))
	switch backend {
	case BackendDiskv, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}

	return &fileConfig{
		Path:   path,
		Kind:   backend,
		Level:  v.GetString("log_level"),
		Colors: v.GetStringSlice("palette"),
	}, nil
}

// NewConfig builds a Config without reading any file.
func NewConfig(path string, backend Backend) Config {
	return &fileConfig{Path: path, Kind: backend, Level: "info"}
}

type fileConfig struct {
	Path   string   `json:"path"`
	Kind   Backend  `json:"backend"`
	Level  string   `json:"log_level"`
	Colors []string `json:"palette"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() Backend {
	if f.Kind == "" {
		return BackendDiskv
	}
	return f.Kind
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

func (f *fileConfig) Palette() []string {
	return append([]string(nil), f.Colors...)
}
