package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lazydino/lazyblog/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists writes a default config file when none exists yet.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	cfg := Default()
	cfg.path = configPath
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return nil
}

// LoadDotEnv loads a .env file from dir into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// BindEnv makes v read LAZYBLOG_* variables, with dots in keys written as
// underscores (search.empty_query -> LAZYBLOG_SEARCH_EMPTY_QUERY).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}
