package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/leapstack-labs/leaplang/internal/cli/output"
	"github.com/leapstack-labs/leaplang/internal/engine"
	"github.com/leapstack-labs/leaplang/internal/history"
	"github.com/spf13/cobra"
)

const (
	shortIDLen    = 8
	historyLayout = "2006-01-02 15:04:05"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs stored by 'leaplang run --record' (or by every run when
history.enabled is set), most recent first. The database lives at
history.path, .leaplang/history.db by default.`,
		Example: `  leaplang history
  leaplang history --limit 5 --format table
  leaplang history show 3f2a9c1d
  leaplang history clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum runs to list (0 lists all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <run-id>",
			Short: "Show one recorded run and its bindings",
			Long:  "Show a recorded run. Any unambiguous prefix of the run ID is accepted.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHistoryShow(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every recorded run",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHistoryClear(cmd)
			},
		},
	)

	return cmd
}

// HistoryEntry is one run in history documents.
type HistoryEntry struct {
	ID          string            `json:"id" yaml:"id"`
	File        string            `json:"file" yaml:"file"`
	Status      string            `json:"status" yaml:"status"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics int               `json:"diagnostics" yaml:"diagnostics"`
	StartedAt   string            `json:"started_at" yaml:"started_at"`
	Duration    string            `json:"duration" yaml:"duration"`
	Bindings    []history.Binding `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// HistoryOutput is the document for the history command.
type HistoryOutput struct {
	Runs []HistoryEntry `json:"runs" yaml:"runs"`
}

func historyEntry(run *history.Run) HistoryEntry {
	return HistoryEntry{
		ID:          run.ID,
		File:        run.File,
		Status:      string(run.Status),
		Error:       run.Error,
		Diagnostics: run.Diagnostics,
		StartedAt:   run.StartedAt.Format(time.RFC3339Nano),
		Duration:    run.Duration.String(),
		Bindings:    run.Bindings,
	}
}

// openHistory opens the configured history database. With mustExist set
// a missing database is reported as fs.ErrNotExist instead of created.
func (cc *CommandContext) openHistory(ctx context.Context, mustExist bool) (*history.Store, error) {
	path := cc.Cfg.History.Path
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}
	return history.Open(ctx, path, cc.Logger)
}

// recordRun stores the outcome of a run. Failures are logged and never
// change the outcome of the run itself.
func (cc *CommandContext) recordRun(ctx context.Context, res *engine.Result, runErr error) {
	if res == nil {
		return
	}
	run := &history.Run{
		ID:          res.RunID,
		File:        res.Name,
		Status:      history.StatusOK,
		Diagnostics: len(res.Diagnostics),
		StartedAt:   res.StartedAt,
		Duration:    res.Duration(),
	}
	switch {
	case runErr != nil:
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
	case res.HasErrors():
		run.Status = history.StatusDiagnostics
	case res.Env != nil:
		for _, b := range res.Env.Bindings() {
			run.Bindings = append(run.Bindings, history.Binding{
				Name:  b.Name,
				Type:  b.Value.Type.String(),
				Value: b.Value.Format(cc.Cfg.RealPrecision),
			})
		}
	}

	store, err := cc.openHistory(ctx, false)
	if err != nil {
		cc.Logger.WarnContext(ctx, "run history unavailable", "path", cc.Cfg.History.Path, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(ctx, run); err != nil {
		cc.Logger.WarnContext(ctx, "failed to record run", "run_id", run.ID, "error", err)
	}
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	runs := []history.Run{}
	store, err := cc.openHistory(ctx, true)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		defer func() { _ = store.Close() }()
		if runs, err = store.List(ctx, opts.Limit); err != nil {
			return err
		}
	}

	r := cc.Renderer
	entries := make([]HistoryEntry, len(runs))
	for i := range runs {
		entries[i] = historyEntry(&runs[i])
	}
	if ok, err := r.Encode(HistoryOutput{Runs: entries}); ok {
		return err
	}

	if len(runs) == 0 {
		r.Muted("No runs recorded")
		return nil
	}
	if r.EffectiveMode() == output.ModeTable {
		rows := make([][]string, len(runs))
		for i, run := range runs {
			rows[i] = []string{
				shortID(run.ID),
				run.StartedAt.Local().Format(historyLayout),
				string(run.Status),
				run.File,
				run.Duration.String(),
			}
		}
		r.Table([]string{"id", "started", "status", "file", "duration"}, rows)
		return nil
	}
	for _, run := range runs {
		r.Printf("%s  %s  %-11s  %s\n",
			shortID(run.ID), run.StartedAt.Local().Format(historyLayout), run.Status, run.File)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	store, err := cc.openHistory(ctx, true)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", history.ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if ok, err := r.Encode(historyEntry(run)); ok {
		return err
	}

	r.Println(output.FormatKeyValue("run", run.ID))
	r.Println(output.FormatKeyValue("file", run.File))
	r.Println(output.FormatKeyValue("status", string(run.Status)))
	r.Println(output.FormatKeyValue("started", run.StartedAt.Local().Format(historyLayout)))
	r.Println(output.FormatKeyValue("duration", run.Duration.String()))
	if run.Diagnostics > 0 {
		r.Println(output.FormatKeyValue("diagnostics", strconv.Itoa(run.Diagnostics)))
	}
	if run.Error != "" {
		r.Println(output.FormatKeyValue("error", run.Error))
	}
	if len(run.Bindings) == 0 {
		return nil
	}

	r.Println()
	if r.EffectiveMode() == output.ModeTable {
		rows := make([][]string, len(run.Bindings))
		for i, b := range run.Bindings {
			rows[i] = []string{b.Name, b.Type, b.Value}
		}
		r.Table([]string{"name", "type", "value"}, rows)
		return nil
	}
	for _, b := range run.Bindings {
		r.Printf("%s = %s\n", b.Name, b.Value)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	store, err := cc.openHistory(ctx, true)
	if errors.Is(err, fs.ErrNotExist) {
		cc.Renderer.Muted("No runs recorded")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Clear(ctx)
	if err != nil {
		return err
	}
	cc.Renderer.Success(fmt.Sprintf("Removed %d run(s)", n))
	return nil
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}
