package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fixcheck/internal/check"
	"fixcheck/internal/ui"
)

func runBatchWithUI(ctx context.Context, title string, cases []check.Case, base check.Request, jobs int) ([]check.CaseResult, error) {
	events := make(chan check.Event, 256)
	outcomeCh := make(chan []check.CaseResult, 1)

	go func() {
		req := base
		req.Progress = check.ChannelSink{Ch: events}
		results := check.RunBatch(ctx, cases, req, jobs)
		outcomeCh <- results
		close(events)
	}()

	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = caseName(c)
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the UI may stop early; keep the workers from blocking on a full channel
	for range events {
	}
	results := <-outcomeCh
	return results, uiErr
}

func caseName(c check.Case) string {
	if c.Name != "" {
		return c.Name
	}
	return c.SourcePath
}
