// Package config loads fixcheck.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest name searched for by Find.
const FileName = "fixcheck.toml"

// Config mirrors fixcheck.toml. Zero values mean "not set".
type Config struct {
	Markers MarkersConfig `toml:"markers"`
	Check   CheckConfig   `toml:"check"`
	Output  OutputConfig  `toml:"output"`
	Cache   CacheConfig   `toml:"cache"`
	Run     RunConfig     `toml:"run"`
	Cases   []CaseConfig  `toml:"case"`
}

type MarkersConfig struct {
	Prefix string `toml:"prefix"`
}

type CheckConfig struct {
	Strict    bool   `toml:"strict"`
	ShowFound bool   `toml:"show_found"`
	Normalize string `toml:"normalize"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type CacheConfig struct {
	Dir string `toml:"dir"`
}

type RunConfig struct {
	Jobs int `toml:"jobs"`
}

// CaseConfig is one [[case]] entry. Paths are resolved against the
// directory holding the manifest.
type CaseConfig struct {
	Name   string `toml:"name"`
	Output string `toml:"output"`
	Source string `toml:"source"`
}

// Manifest is a loaded fixcheck.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir looking for fixcheck.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest manifest. The bool result is false
// when no manifest exists; that is not an error.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var cfg Config
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("markers", "prefix") && strings.TrimSpace(cfg.Markers.Prefix) == "" {
		return nil, fmt.Errorf("%s: [markers].prefix must not be empty", path)
	}
	if meta.IsDefined("check", "normalize") {
		switch cfg.Check.Normalize {
		case "none", "nfc":
		default:
			return nil, fmt.Errorf("%s: [check].normalize must be \"none\" or \"nfc\", got %q", path, cfg.Check.Normalize)
		}
	}
	if meta.IsDefined("output", "color") {
		switch cfg.Output.Color {
		case "auto", "on", "off":
		default:
			return nil, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, cfg.Output.Color)
		}
	}
	if cfg.Run.Jobs < 0 {
		return nil, fmt.Errorf("%s: [run].jobs must not be negative", path)
	}

	root := filepath.Dir(abs)
	for i := range cfg.Cases {
		c := &cfg.Cases[i]
		if strings.TrimSpace(c.Output) == "" || strings.TrimSpace(c.Source) == "" {
			return nil, fmt.Errorf("%s: [[case]] #%d needs both output and source", path, i+1)
		}
		c.Output = resolve(root, c.Output)
		c.Source = resolve(root, c.Source)
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
	}
	if cfg.Cache.Dir != "" {
		cfg.Cache.Dir = resolve(root, cfg.Cache.Dir)
	}
	return &Manifest{Path: abs, Root: root, Config: cfg}, nil
}

func resolve(root, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
