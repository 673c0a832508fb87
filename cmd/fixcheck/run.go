package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"fixcheck/internal/check"
	"fixcheck/internal/report"
	"fixcheck/internal/watch"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Check every case listed in fixcheck.toml (or given with --case)",
	Long: `Runs one check per [[case]] of fixcheck.toml, or per --case OUTPUT:SOURCE
pair, with up to --jobs checks in flight. Results are printed in case order.
A case whose files cannot be read or whose annotations are malformed fails the
run; mismatches fail it only with --strict.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	addCheckFlags(runCmd)
	runCmd.Flags().StringArray("case", nil, "OUTPUT:SOURCE pair to check (repeatable)")
	runCmd.Flags().Int("jobs", 0, "maximum concurrent checks (0 = GOMAXPROCS or [run].jobs)")
	runCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	runCmd.Flags().Bool("watch", false, "re-run whenever a case file changes (Ctrl-C to stop)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cleanup, err := setupDiagnostics(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cases, err := collectCases(cmd, s)
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("jobs") && s.manifest != nil && s.manifest.Config.Run.Jobs > 0 {
		jobs = s.manifest.Config.Run.Jobs
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	base := check.Request{
		Markers:   s.markers,
		Normalize: s.normalize,
		BaseDir:   s.baseDir(),
		Cache:     s.openCache(cmd),
	}

	watching, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	if watching {
		return watchBatch(cmd, s, cases, base, jobs)
	}

	var results []check.CaseResult
	if shouldUseTUI(mode) && !s.quiet && s.format != report.FormatJSON {
		results, err = runBatchWithUI(cmd.Context(), fmt.Sprintf("fixcheck run (%d cases)", len(cases)), cases, base, jobs)
		if err != nil {
			return fmt.Errorf("progress UI: %w", err)
		}
	} else {
		results = check.RunBatch(cmd.Context(), cases, base, jobs)
	}
	return finishBatch(cmd, s, results)
}

// finishBatch prints the results and turns fatal cases (and, with --strict,
// mismatches) into the command error.
func finishBatch(cmd *cobra.Command, s *settings, results []check.CaseResult) error {
	if err := report.Batch(cmd.OutOrStdout(), results, s.reportOptions()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	for _, r := range results {
		if r.Result != nil {
			s.printWarnings(cmd, caseName(r.Case)+": ", r.Result)
		}
	}
	if s.timings {
		for _, r := range results {
			if r.Result != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s", caseName(r.Case), r.Result.Timing.Summary())
			}
		}
	}

	var fatal, mismatched int
	for _, r := range results {
		switch {
		case r.Err != nil:
			fatal++
		case r.Result.Failed():
			mismatched++
		}
	}
	if fatal > 0 {
		return fmt.Errorf("%d of %d cases could not be checked", fatal, len(results))
	}
	if s.strict && mismatched > 0 {
		return fmt.Errorf("%w: %d of %d cases", check.ErrMismatch, mismatched, len(results))
	}
	return nil
}

// watchBatch runs the batch once, then again after every change to a case
// file, until interrupted. Per-run failures are printed, not returned.
func watchBatch(cmd *cobra.Command, s *settings, cases []check.Case, base check.Request, jobs int) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	paths := make([]string, 0, 2*len(cases))
	for _, c := range cases {
		paths = append(paths, c.OutputPath, c.SourcePath)
	}
	w, err := watch.New(paths, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	rerun := func() {
		results := check.RunBatch(ctx, cases, base, jobs)
		if err := finishBatch(cmd, s, results); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %d files, Ctrl-C to stop\n", len(paths))
		}
	}
	rerun()
	return w.Run(ctx, func(changed []string) {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "changed: %s\n", strings.Join(changed, ", "))
		}
		rerun()
	})
}

// collectCases prefers --case pairs over the manifest's [[case]] entries.
func collectCases(cmd *cobra.Command, s *settings) ([]check.Case, error) {
	pairs, err := cmd.Flags().GetStringArray("case")
	if err != nil {
		return nil, err
	}
	if len(pairs) > 0 {
		cases := make([]check.Case, 0, len(pairs))
		for _, p := range pairs {
			output, src, ok := strings.Cut(p, ":")
			if !ok || output == "" || src == "" {
				return nil, fmt.Errorf("invalid --case %q (expected OUTPUT:SOURCE)", p)
			}
			cases = append(cases, check.Case{OutputPath: output, SourcePath: src})
		}
		return cases, nil
	}
	if s.manifest == nil || len(s.manifest.Config.Cases) == 0 {
		return nil, errors.New("no cases: add [[case]] entries to fixcheck.toml or pass --case OUTPUT:SOURCE")
	}
	cases := make([]check.Case, 0, len(s.manifest.Config.Cases))
	for _, c := range s.manifest.Config.Cases {
		cases = append(cases, check.Case{Name: c.Name, OutputPath: c.Output, SourcePath: c.Source})
	}
	return cases, nil
}
