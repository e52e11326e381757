package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Load reads startup defaults from a TOML file layered over Defaults.
// The file is only read; edits made at runtime are never written back.
// When required is false a missing file yields Defaults.
func Load(fs afero.Fs, path string, required bool) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Defaults(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
