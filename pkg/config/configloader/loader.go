// Package configloader loads service configuration from defaults, a YAML file, a .env file and
// the process environment, in increasing order of priority.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// ConfigDir is the directory the YAML config files are looked up in.
var ConfigDir = "configs"

// EnvFile is the optional dotenv file merged below the process environment.
var EnvFile = ".env"

// Load builds the configuration of the named service.
//
// Convention: config file is named as <service_name>_service.yaml and located in ConfigDir,
// environment variables are prefixed with <SERVICE_NAME>_ and use "_" as the key delimiter,
// e.g. PRODUCT_SERVER_PORT overrides server.port.
func Load[T Validator](serviceName string, defaults map[string]any) (T, error) {
	var cfg T
	k := koanf.New(".")
	prefix := strings.ToUpper(serviceName) + "_"
	toKey := keyMapper(prefix)

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return cfg, fmt.Errorf("error loading default config: %w", err)
	}

	configFile := filepath.Join(ConfigDir, serviceName+"_service.yaml")
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: error loading YAML config file '%s': %v", configFile, err)
	}

	dotenv, err := readDotenv(prefix, toKey)
	if err != nil {
		log.Printf("WARN: error reading %s: %v", EnvFile, err)
	}
	if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
		log.Printf("WARN: error loading %s: %v", EnvFile, err)
	}

	if err := k.Load(env.Provider(prefix, ".", toKey), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// keyMapper turns PREFIX_SERVER_PORT into server.port.
func keyMapper(prefix string) func(string) string {
	return func(key string) string {
		key = strings.TrimPrefix(strings.ToUpper(key), prefix)
		return strings.ReplaceAll(strings.ToLower(key), "_", ".")
	}
}

// readDotenv returns the prefixed entries of EnvFile as config keys. A missing file is empty.
func readDotenv(prefix string, toKey func(string) string) (map[string]any, error) {
	entries, err := godotenv.Read(EnvFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return map[string]any{}, err
	}
	out := make(map[string]any, len(entries))
	for key, value := range entries {
		if strings.HasPrefix(strings.ToUpper(key), prefix) {
			out[toKey(key)] = value
		}
	}
	return out, nil
}
