package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CARDFORGE_"

// LoadDotEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return cferrors.Wrap(cferrors.ErrCodeInvalidConfig, err, "load env file").WithSubject(p)
		}
	}
	return nil
}

// ApplyEnv overrides settings from the CARDFORGE_* entries of environ.
// Empty values leave the current setting alone.
func (c *Config) ApplyEnv(environ map[string]string) error {
	set := make(map[string]string, len(environ))
	for k, v := range environ {
		if v != "" {
			set[k] = v
		}
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix, Environment: set}); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeInvalidConfig, err, "parse environment")
	}
	return nil
}
