package tui

import (
	"context"
	"io"

	"e2fn/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// Work performs the batch and reports progress through the callback.
type Work func(ctx context.Context, onProgress func(current, total int, name string)) (domain.Report, error)

// Run shows the progress view on out while work runs in the background and
// returns the result of work once both have finished. Quitting the view
// cancels the context handed to work.
func Run(ctx context.Context, cfg Config, out io.Writer, work Work, opts ...tea.ProgramOption) (domain.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg.Cancel = cancel
	program := tea.NewProgram(NewModel(cfg), append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)...)

	var (
		report domain.Report
		err    error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		report, err = work(ctx, func(current, total int, name string) {
			program.Send(ProgressMsg{Current: current, Total: total, File: name})
		})
		if err != nil {
			program.Send(ErrorMsg{Err: err})
			return
		}
		program.Send(DoneMsg{Report: report})
	}()

	_, uiErr := program.Run()
	if uiErr != nil {
		cancel()
	}
	<-done

	if err == nil && uiErr != nil {
		err = uiErr
	}
	return report, err
}
