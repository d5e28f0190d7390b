package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir     = "data_dir"
	cfgKeyUniqueDates = "unique_dates"
	cfgKeyLogLevel    = "log_level"
	cfgKeyTheme       = "theme"
	cfgKeyPIN         = "pin"

	envPIN = "JOURNAL_PIN"

	// envFileName is an optional dotenv file in the config directory.
	// Variables already set in the environment win.
	envFileName = ".env"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Journal configuration

# Directory holding journal.db (optional; overridable by --data-dir)
# data_dir:

# Reject a second entry for a date that already has one
unique_dates: true

# debug, info, warn or error
log_level: info

# light or dark
theme: light
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyUniqueDates, true)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyTheme, "light")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(cfgKeyPIN, envPIN); err != nil {
		return nil, fmt.Errorf("bind %s: %w", envPIN, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// setConfigValue rewrites one top-level key of config.yaml, keeping the
// other keys and their comments.
func setConfigValue(configDir, key, value string) error {
	path := filepath.Join(configDir, configFileExt)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	mapping := doc.Content[0]

	replaced := false
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
			replaced = true
			break
		}
	}
	if !replaced {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

// loadEnvFile loads <configDir>/.env into the process environment when it
// exists.
func loadEnvFile(configDir string) error {
	path := filepath.Join(configDir, envFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
