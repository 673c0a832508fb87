package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixcheck/internal/check"
	"fixcheck/internal/observ"
	"fixcheck/internal/report"
	"fixcheck/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check <output-file> <annotated-file>",
	Short: "Verify that tool output contains the fixes an annotated file expects",
	Long: `Reads the tool output and the annotated source, collects every CHECK-FIXES
block and prints one line for each fix that was not found the expected number
of times. Mismatches do not change the exit status unless --strict is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	cleanup, err := setupDiagnostics(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	req := &check.Request{
		OutputPath: args[0],
		SourcePath: args[1],
		Markers:    s.markers,
		Normalize:  s.normalize,
		BaseDir:    s.baseDir(),
		Cache:      s.openCache(cmd),
	}
	res, err := check.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	tracer := trace.FromContext(cmd.Context())
	span := trace.Begin(tracer, trace.ScopePhase, "report", trace.CurrentSpan(cmd.Context()))
	timer := observ.NewTimer()
	idx := timer.Begin("report")
	err = report.Render(cmd.OutOrStdout(), res, s.reportOptions())
	timer.End(idx, string(s.format))
	span.End("")
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s.printWarnings(cmd, "", res)
	if s.timings && s.format != report.FormatJSON {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Append(timer.Report()).Summary())
	}
	if s.strict && res.Failed() {
		sum := res.Summary()
		return fmt.Errorf("%w: %d of %d fragments", check.ErrMismatch, sum.Failed(), sum.Fragments)
	}
	return nil
}
