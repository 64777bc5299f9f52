package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Mode     string
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-run a source file every time it is saved",
		Long: `Process a source file once, then again after every save, until
interrupted. Saves arriving in quick succession trigger a single run.`,
		Example: `  leaplang watch examples/hello.lp
  leaplang watch --mode ast --debounce 300ms examples/hello.lp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", string(ModeRun), "Pipeline mode: tokens, ast, run")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 0, "Delay before re-running (default: watch.debounce)")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(ModeTokens), string(ModeAST), string(ModeRun)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions, path string) error {
	mode := Mode(opts.Mode)
	switch mode {
	case ModeTokens, ModeAST, ModeRun:
	default:
		return fmt.Errorf("invalid mode %q (available: tokens, ast, run)", opts.Mode)
	}

	cc := NewCommandContext(cmd)
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = cc.Cfg.Watch.Debounce
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace the file on save
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	rerun := func() {
		cc.Renderer.Header(2, fmt.Sprintf("%s (%s)", filepath.Base(path), time.Now().Format("15:04:05")))
		src, err := readSource(path)
		if err == nil {
			err = cc.process(ctx, mode, path, src)
		}
		if err != nil && !IsReported(err) {
			cc.Renderer.Error("Erro: " + err.Error())
		}
	}

	rerun()
	cc.Renderer.Muted("Watching for changes (Ctrl+C to stop)")
	watchLoop(ctx, watcher, abs, debounce, cc.Logger, rerun)
	return nil
}

// watchLoop calls onChange after writes to target, once per burst of events
// separated by less than debounce. It returns when ctx is done or the
// watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, debounce time.Duration, logger *slog.Logger, onChange func()) {
	// Debounce timer
	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fire:
			onChange()
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only handle write/create events for the watched file
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			logger.DebugContext(ctx, "change detected", "file", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.DebugContext(ctx, "watcher error", "error", err)
		}
	}
}
