package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fixcheck/internal/annot"
	"fixcheck/internal/cache"
	"fixcheck/internal/check"
	"fixcheck/internal/config"
	"fixcheck/internal/diag"
	"fixcheck/internal/report"
	"fixcheck/internal/source"
)

// settings are the effective options of one invocation: explicit flags win
// over fixcheck.toml, which wins over flag defaults.
type settings struct {
	manifest  *config.Manifest
	format    report.Format
	showFound bool
	strict    bool
	markers   annot.Markers
	normalize source.Normalization
	cacheDir  string
	color     bool
	quiet     bool
	timings   bool
	width     int
}

func addCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", "text", "output format (text|pretty|json|short)")
	f.Bool("show-found", false, "also print a line for every fix that was found")
	f.Bool("strict", false, "exit with status 1 when some fix was not found the expected number of times")
	f.String("check-prefix", annot.DefaultPrefix, "marker prefix; PREFIX: opens a fix, PREFIX-NEXT: continues it")
	f.String("normalize", "none", "unicode normalization applied to both files (none|nfc)")
	f.Bool("no-cache", false, "do not read or write the annotation cache")
	f.String("cache-dir", "", "annotation cache directory (default: [cache].dir of fixcheck.toml)")
}

func loadManifest(cmd *cobra.Command) (*config.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.Load(path)
	}
	m, _, err := config.Discover(".")
	return m, err
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	m, err := loadManifest(cmd)
	if err != nil {
		return nil, err
	}
	var cfg config.Config
	if m != nil {
		cfg = m.Config
	}
	s := &settings{manifest: m}
	flags := cmd.Flags()
	pflags := cmd.Root().PersistentFlags()

	formatStr := pick(flagString(flags, "format"), cfg.Output.Format, flags.Changed("format"))
	if s.format, err = report.ParseFormat(formatStr); err != nil {
		return nil, err
	}
	s.showFound = flagBool(flags, "show-found") || (!flags.Changed("show-found") && cfg.Check.ShowFound)
	s.strict = flagBool(flags, "strict") || (!flags.Changed("strict") && cfg.Check.Strict)

	prefix := pick(flagString(flags, "check-prefix"), cfg.Markers.Prefix, flags.Changed("check-prefix"))
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("--check-prefix must not be empty")
	}
	s.markers = annot.MarkersFor(prefix)

	normStr := pick(flagString(flags, "normalize"), cfg.Check.Normalize, flags.Changed("normalize"))
	norm, ok := source.ParseNormalization(normStr)
	if !ok {
		return nil, fmt.Errorf("invalid --normalize value %q (expected none|nfc)", normStr)
	}
	s.normalize = norm

	if !flagBool(flags, "no-cache") {
		s.cacheDir = pick(flagString(flags, "cache-dir"), cfg.Cache.Dir, flags.Changed("cache-dir"))
	}

	colorStr, _ := pflags.GetString("color")
	colorStr = pick(colorStr, cfg.Output.Color, pflags.Changed("color"))
	mode, err := readColorMode(colorStr)
	if err != nil {
		return nil, err
	}
	s.color = useColor(mode)
	s.quiet, _ = pflags.GetBool("quiet")
	s.timings, _ = pflags.GetBool("timings")
	s.width = terminalWidth(os.Stdout)
	return s, nil
}

// pick returns the flag value when it was set explicitly or the config value
// is empty, otherwise the config value.
func pick(flagValue, configValue string, changed bool) string {
	if changed || configValue == "" {
		return flagValue
	}
	return configValue
}

// flagString and flagBool read flags that may be missing on a command;
// a missing flag reads as its zero value.
func flagString(flags interface{ GetString(string) (string, error) }, name string) string {
	v, err := flags.GetString(name)
	if err != nil {
		return ""
	}
	return v
}

func flagBool(flags interface{ GetBool(string) (bool, error) }, name string) bool {
	v, err := flags.GetBool(name)
	if err != nil {
		return false
	}
	return v
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func useColor(mode colorMode) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return !color.NoColor && isTerminal(os.Stdout)
	}
}

// baseDir is the directory reported paths are relative to: the manifest
// root when there is one, the working directory otherwise.
func (s *settings) baseDir() string {
	if s.manifest != nil {
		return s.manifest.Root
	}
	return ""
}

func (s *settings) reportOptions() report.Options {
	return report.Options{
		Format:    s.format,
		ShowFound: s.showFound,
		Color:     s.color,
		Width:     s.width,
		Timings:   s.timings,
	}
}

// openCache returns nil when caching is disabled. A cache that cannot be
// opened is skipped with a warning.
func (s *settings) openCache(cmd *cobra.Command) *cache.Cache {
	if s.cacheDir == "" {
		return nil
	}
	c, err := cache.Open(s.cacheDir)
	if err != nil {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: annotation cache disabled: %v\n", err)
		}
		return nil
	}
	return c
}

// printWarnings writes the non-fatal diagnostics of res to stderr. The short
// and json formats already carry them.
func (s *settings) printWarnings(cmd *cobra.Command, prefix string, res *check.Result) {
	if s.quiet || s.format == report.FormatShort || s.format == report.FormatJSON {
		return
	}
	for _, d := range res.Bag.Items() {
		if d.Severity != diag.SevWarning {
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%swarning: %s: %s\n", prefix, d.Code.ID(), d.Message)
	}
}
