package commands

import (
	"context"
	"fmt"
	"runtime"

	"github.com/leapstack-labs/leaplang/internal/cli/output"
	"github.com/leapstack-labs/leaplang/internal/engine"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Jobs int
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check several source files without executing them",
		Long: `Lex, parse and check every file given, in parallel. Results are printed
in argument order. The command fails if any file has a syntax error or a
semantic error.`,
		Example: `  leaplang check a.lp b.lp c.lp
  leaplang check --jobs 2 *.lp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files checked in parallel (default: check.jobs, then one per CPU)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, paths []string) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = cc.Cfg.Check.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results, err := checkFiles(ctx, cc.Engine, paths, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.OK {
			failed++
		}
	}
	cc.Logger.DebugContext(ctx, "check complete", "files", len(results), "failed", failed, "jobs", jobs)

	if err := renderCheck(cc.Renderer, results, failed); err != nil {
		return err
	}
	if failed > 0 {
		return ErrDiagnostics
	}
	return nil
}

// checkFiles checks every path with at most jobs files in flight. A file's
// own failure is recorded in its result; only cancellation stops the batch.
func checkFiles(ctx context.Context, eng *engine.Engine, paths []string, jobs int) ([]CheckFileResult, error) {
	results := make([]CheckFileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = checkFile(gctx, eng, path)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(ctx context.Context, eng *engine.Engine, path string) CheckFileResult {
	out := CheckFileResult{File: path}

	src, err := readSource(path)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	res, err := eng.Run(ctx, path, src, engine.StageCheck)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Diagnostics = nonNil(res.Diagnostics)
	out.OK = !res.HasErrors()
	return out
}

func renderCheck(r *output.Renderer, results []CheckFileResult, failed int) error {
	if ok, err := r.Encode(CheckOutput{Files: results, Failed: failed}); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeTable {
		rows := make([][]string, len(results))
		for i, res := range results {
			status := "ok"
			if !res.OK {
				status = "falhou"
			}
			detail := res.Error
			if detail == "" && len(res.Diagnostics) > 0 {
				detail = res.Diagnostics[0].String()
				if n := len(res.Diagnostics) - 1; n > 0 {
					detail += fmt.Sprintf(" (+%d)", n)
				}
			}
			rows[i] = []string{res.File, status, detail}
		}
		r.Table([]string{"file", "status", "detail"}, rows)
		return nil
	}

	for _, res := range results {
		switch {
		case res.Error != "":
			r.Error(fmt.Sprintf("%s: Erro: %s", res.File, res.Error))
		case res.OK && len(res.Diagnostics) == 0:
			r.Success(res.File + ": ok")
		default:
			for _, d := range res.Diagnostics {
				line := fmt.Sprintf("%s: %s", res.File, d.String())
				if d.Severity == diag.SeverityWarning {
					r.Warning(line)
				} else {
					r.Error(line)
				}
			}
		}
	}
	return nil
}
