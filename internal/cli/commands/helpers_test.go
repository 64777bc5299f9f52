package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplang/internal/cli/config"
	"github.com/leapstack-labs/leaplang/internal/cli/output"
	clitest "github.com/leapstack-labs/leaplang/internal/cli/testutil"
	"github.com/leapstack-labs/leaplang/internal/engine"
	"github.com/leapstack-labs/leaplang/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// useConfig resets the loaded configuration and, when content is not empty,
// loads it from a temporary leaplang.yaml.
func useConfig(t *testing.T, content string) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	if content == "" {
		return
	}
	path := filepath.Join(t.TempDir(), "leaplang.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	_, err := config.LoadConfig(path, nil)
	require.NoError(t, err)
}

var writeSource = clitest.WriteSource

// execute runs cmd with args and returns its captured stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// newTestContext builds a CommandContext writing plain text into buffers.
func newTestContext(t *testing.T, cfg *config.Config) (*CommandContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	tr := clitest.NewTestRenderer(output.Mode(cfg.Format), false)
	logger := testutil.NewTestLogger(t)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   engine.New(engine.Config{Logger: logger}),
		Renderer: tr.Renderer,
	}, tr.Out, tr.ErrOut
}
