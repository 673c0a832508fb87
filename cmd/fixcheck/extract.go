package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixcheck/internal/annot"
	"fixcheck/internal/check"
	"fixcheck/internal/report"
)

var extractCmd = &cobra.Command{
	Use:   "extract <annotated-file>",
	Short: "Print the fixes an annotated file expects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupDiagnostics(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if s.format != report.FormatText && s.format != report.FormatJSON {
			return fmt.Errorf("unsupported format %q for extract (must be text or json)", s.format)
		}

		set, f, err := check.Extract(cmd.Context(), &check.Request{
			SourcePath: args[0],
			Markers:    s.markers,
			Normalize:  s.normalize,
			BaseDir:    s.baseDir(),
			Cache:      s.openCache(cmd),
		})
		if err != nil {
			return err
		}
		return report.Expected(cmd.OutOrStdout(), f.Path, set, s.format)
	},
}

func init() {
	f := extractCmd.Flags()
	f.String("format", "text", "output format (text|json)")
	f.String("check-prefix", annot.DefaultPrefix, "marker prefix; PREFIX: opens a fix, PREFIX-NEXT: continues it")
	f.String("normalize", "none", "unicode normalization (none|nfc)")
	f.Bool("no-cache", false, "do not read or write the annotation cache")
	f.String("cache-dir", "", "annotation cache directory (default: [cache].dir of fixcheck.toml)")
}
