package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultStorageDir = ".daybook"
	defaultConfigName = "config.json"
	defaultListenAddr = "localhost:8340"
)

// Runtime is the per-process environment overlay: where the document lives,
// how chatty the logs are, where the API listens. It is sourced from the
// environment (plus an optional .env file) and never persisted.
type Runtime struct {
	Env        string
	LogLevel   string
	ConfigPath string
	StorageDir string
	ListenAddr string
}

// LoadRuntime reads the overlay from the environment. Defaults place all
// state under ~/.daybook.
func LoadRuntime() *Runtime {
	// A .env next to the binary is optional and loses to real env vars.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DAYBOOK_LISTEN", defaultListenAddr)

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	storageDir := viper.GetString("DAYBOOK_HOME")
	if storageDir == "" {
		storageDir = filepath.Join(home, defaultStorageDir)
	}

	configPath := viper.GetString("DAYBOOK_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(storageDir, defaultConfigName)
	}

	return &Runtime{
		Env:        viper.GetString("APP_ENV"),
		LogLevel:   viper.GetString("LOG_LEVEL"),
		ConfigPath: configPath,
		StorageDir: storageDir,
		ListenAddr: viper.GetString("DAYBOOK_LISTEN"),
	}
}
