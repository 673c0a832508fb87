package report

import "fmt"

// Format selects how a check result is rendered.
type Format string

const (
	// FormatText prints the plain "Found fix" / "Did not find" lines.
	FormatText Format = "text"
	// FormatPretty prints colored blocks with annotation locations.
	FormatPretty Format = "pretty"
	// FormatJSON prints one JSON document.
	FormatJSON Format = "json"
	// FormatShort prints one "<severity> <code> <path>:<line>:<col> <message>" line per diagnostic.
	FormatShort Format = "short"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatPretty, FormatJSON, FormatShort:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, pretty, json or short)", s)
	}
}

// PathMode specifies how file paths are displayed.
type PathMode string

const (
	PathModeRelative PathMode = "relative"
	PathModeAbsolute PathMode = "absolute"
	PathModeBasename PathMode = "basename"
)

// Options configures rendering.
type Options struct {
	Format    Format
	ShowFound bool     // also report fragments found at their offsets
	Color     bool     // pretty only
	Width     int      // pretty only: truncate fragment lines to this many cells, 0 - без ограничения
	PathMode  PathMode // empty means relative
	Timings   bool     // json only: include phase timings
}

func (o Options) pathMode() string {
	if o.PathMode == "" {
		return string(PathModeRelative)
	}
	return string(o.PathMode)
}
