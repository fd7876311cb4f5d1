// Package config loads swatch settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Environment variables read by swatch.
const (
	EnvColours   = "SWATCH_COLOURS"
	EnvMode      = "SWATCH_MODE"
	EnvAlgorithm = "SWATCH_ALGORITHM"
	EnvHistoryDB = "SWATCH_HISTORY_DB"
	EnvNoHistory = "SWATCH_NO_HISTORY"
	EnvSeedMode  = "SWATCH_SEED_MODE"
	EnvGoogleKey = "GOOGLE_API_KEY"
)

// flagBindings maps flag names to the environment variables that supply their defaults.
var flagBindings = []struct {
	flag string
	env  string
}{
	{"colours", EnvColours},
	{"mode", EnvMode},
	{"algorithm", EnvAlgorithm},
	{"history-db", EnvHistoryDB},
	{"no-history", EnvNoHistory},
	{"seed-mode", EnvSeedMode},
}

// Config is the environment-derived configuration.
type Config struct {
	Colours      int
	Mode         string
	Algorithm    string
	HistoryDB    string
	NoHistory    bool
	SeedMode     string
	GoogleAPIKey string
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment. Variables already set are left alone and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads the .env file and then the environment.
func Load(files ...string) (Config, error) {
	if err := LoadDotEnv(files...); err != nil {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup.
func FromEnv(lookup LookupFunc) (Config, error) {
	var cfg Config
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get(EnvColours); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvColours, v, err)
		}
		cfg.Colours = n
	}
	if v := get(EnvNoHistory); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvNoHistory, v, err)
		}
		cfg.NoHistory = b
	}

	cfg.Mode = get(EnvMode)
	cfg.Algorithm = get(EnvAlgorithm)
	cfg.HistoryDB = get(EnvHistoryDB)
	cfg.SeedMode = get(EnvSeedMode)
	cfg.GoogleAPIKey = get(EnvGoogleKey)
	return cfg, nil
}

// ApplyToFlags uses environment values as defaults for flags that were
// not set on the command line.
func ApplyToFlags(flags *pflag.FlagSet) error {
	return applyToFlags(flags, os.LookupEnv)
}

func applyToFlags(flags *pflag.FlagSet, lookup LookupFunc) error {
	for _, b := range flagBindings {
		flag := flags.Lookup(b.flag)
		if flag == nil || flag.Changed {
			continue
		}
		v, ok := lookup(b.env)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		// Value.Set keeps Changed false so the value still reads as a default.
		if err := flag.Value.Set(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("invalid %s %q for --%s: %w", b.env, v, b.flag, err)
		}
		flag.DefValue = flag.Value.String()
	}
	return nil
}
