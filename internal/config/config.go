// Package config loads formatting options from tomlfmt.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cargosort/internal/format"
)

// Candidate file names, first found wins.
var FileNames = []string{"tomlfmt.toml", ".tomlfmt.toml"}

var (
	ErrUnknownKeys  = errors.New("unknown configuration keys")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Loaded is a resolved configuration and the file it came from.
type Loaded struct {
	Config format.Config
	// Path is empty when no file was found and defaults apply.
	Path string
}

// Find returns the config file in dir, if any.
func Find(dir string) (path string, ok bool, err error) {
	if dir == "" {
		dir = "."
	}
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return candidate, true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// Load resolves the configuration for dir. A missing file yields defaults.
func Load(dir string) (Loaded, error) {
	path, ok, err := Find(dir)
	if err != nil || !ok {
		return Loaded{Config: format.DefaultConfig()}, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, Path: path}, nil
}

// LoadFile decodes path over the defaults.
func LoadFile(path string) (format.Config, error) {
	cfg := format.DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return format.Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := checkDecoded(meta); err != nil {
		return format.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return format.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses configuration text; used for inline overrides and tests.
func Decode(text string) (format.Config, error) {
	cfg := format.DefaultConfig()
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return format.Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := checkDecoded(meta); err != nil {
		return format.Config{}, err
	}
	if err := validate(cfg); err != nil {
		return format.Config{}, err
	}
	return cfg, nil
}

func checkDecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
}

func validate(cfg format.Config) error {
	switch {
	case cfg.MaxArrayLineLen < 0:
		return fmt.Errorf("%w: max_array_line_len must not be negative", ErrInvalidValue)
	case cfg.IndentWidth < 0:
		return fmt.Errorf("%w: indent_count must not be negative", ErrInvalidValue)
	case cfg.MaxBlankLines < 0:
		return fmt.Errorf("%w: allowed_blank_lines must not be negative", ErrInvalidValue)
	}
	for _, t := range cfg.TableOrder {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: table_order entries must not be empty", ErrInvalidValue)
		}
	}
	return nil
}

// Encode writes cfg as a tomlfmt.toml document.
func Encode(w io.Writer, cfg format.Config) error {
	if cfg.TableOrder == nil {
		cfg.TableOrder = []string{}
	}
	return toml.NewEncoder(w).Encode(cfg)
}
