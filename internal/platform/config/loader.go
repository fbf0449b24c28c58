package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FOCUSFLOW_"

// Load builds a Config by layering, from low to high precedence:
//  1. defaults for vaultPath
//  2. YAML file: configPath, else $FOCUSFLOW_CONFIG, else <vault>/.focusflow/config.yaml if present
//  3. FOCUSFLOW_* environment variables
func Load(vaultPath, configPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	k := koanf.New(".")

	path, explicit := configFile(vaultPath, configPath)
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	// FOCUSFLOW_CUE_CLOCK -> cue_clock
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults(vaultPath)
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configFile(vaultPath, configPath string) (string, bool) {
	if configPath != "" {
		return configPath, true
	}
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		return path, true
	}
	return filepath.Join(vaultPath, ".focusflow", "config.yaml"), false
}
