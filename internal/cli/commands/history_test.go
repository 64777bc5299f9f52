package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplang/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useHistory points the history database at a temporary file.
func useHistory(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "history.db")
	useConfig(t, fmt.Sprintf("history:\n  path: %q\n%s", path, extra))
	return path
}

func TestHistory_Empty(t *testing.T) {
	useHistory(t, "")

	out, errOut, err := execute(NewHistoryCommand())
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded\n", out)
	assert.Empty(t, errOut)
}

func TestRunCommand_RecordsWhenAsked(t *testing.T) {
	useHistory(t, "format: json\n")
	path := writeSource(t, "main.lp", "int x = 5; float f = 1; f = f / 4;")

	_, _, err := execute(NewRunCommand(), path)
	require.NoError(t, err)
	runs := historyRuns(t)
	assert.Empty(t, runs, "nothing is recorded without --record")

	_, _, err = execute(NewRunCommand(), "--record", path)
	require.NoError(t, err)
	runs = historyRuns(t)
	require.Len(t, runs, 1)
	assert.Equal(t, path, runs[0].File)
	assert.Equal(t, history.StatusOK, runs[0].Status)
	assert.Empty(t, runs[0].Error)
}

func TestRunCommand_RecordsEveryOutcome(t *testing.T) {
	dbPath := useHistory(t, "  enabled: true\n")

	tests := []struct {
		name       string
		src        string
		wantErr    error
		wantStatus history.Status
	}{
		{"clean", "int a = 1;", nil, history.StatusOK},
		{"semantic error", `int a; a = "s";`, ErrDiagnostics, history.StatusDiagnostics},
		{"runtime error", "int a = 1 / 0;", nil, history.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, "prog.lp", tt.src)
			_, _, err := execute(NewRunCommand(), path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			store, err := history.Open(t.Context(), dbPath, nil)
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			runs, err := store.List(t.Context(), 1)
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, tt.wantStatus, runs[0].Status)
			if tt.wantStatus == history.StatusFailed {
				assert.Equal(t, "Erro de execucao na linha 1, coluna 11: divisao por zero", runs[0].Error)
			}
		})
	}
}

func TestHistoryShow(t *testing.T) {
	useHistory(t, "  enabled: true\n")
	path := writeSource(t, "main.lp", "int x = 5; float f = 0.5;")

	_, _, err := execute(NewRunCommand(), path)
	require.NoError(t, err)
	runs := historyRuns(t)
	require.Len(t, runs, 1)

	out, _, err := execute(NewHistoryCommand(), "show", runs[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "run: "+runs[0].ID+"\n")
	assert.Contains(t, out, "file: "+path+"\n")
	assert.Contains(t, out, "status: ok\n")
	assert.Contains(t, out, "\nx = 5\nf = 0.5\n")
}

func TestHistoryShow_Errors(t *testing.T) {
	useHistory(t, "")

	_, _, err := execute(NewHistoryCommand(), "show", "nope")
	assert.True(t, errors.Is(err, history.ErrNotFound), "missing database")

	path := writeSource(t, "main.lp", "int a;")
	_, _, err = execute(NewRunCommand(), "--record", path)
	require.NoError(t, err)

	_, _, err = execute(NewHistoryCommand(), "show", "nope")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestHistoryListAndClear(t *testing.T) {
	useHistory(t, "")
	for _, name := range []string{"a.lp", "b.lp", "c.lp"} {
		path := writeSource(t, name, "int a = 1;")
		_, _, err := execute(NewRunCommand(), "--record", path)
		require.NoError(t, err)
	}

	out, _, err := execute(NewHistoryCommand(), "--limit", "2")
	require.NoError(t, err)
	lines := nonEmptyLines(out)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "c.lp", "most recent first")
	assert.Contains(t, lines[1], "b.lp")

	out, _, err = execute(NewHistoryCommand(), "clear")
	require.NoError(t, err)
	assert.Equal(t, "Removed 3 run(s)\n", out)

	out, _, err = execute(NewHistoryCommand())
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded\n", out)
}

func TestHistoryList_Table(t *testing.T) {
	useHistory(t, "format: table\n")
	path := writeSource(t, "main.lp", "int a = 1;")
	_, _, err := execute(NewRunCommand(), "--record", path)
	require.NoError(t, err)

	out, _, err := execute(NewHistoryCommand())
	require.NoError(t, err)
	for _, want := range []string{"Id", "Started", "Status", "File", "Duration", "main.lp", "ok"} {
		assert.Contains(t, out, want)
	}
}

func TestRecordRun_UnwritablePathOnlyLogs(t *testing.T) {
	useConfig(t, "")
	cc, out, _ := newTestContext(t, nil)
	// A regular file where the parent directory should be.
	blocker := writeSource(t, "blocker", "")
	cc.Cfg.History.Path = filepath.Join(blocker, "history.db")
	cc.Record = true

	require.NoError(t, cc.process(t.Context(), ModeRun, "main.lp", "int a = 2;"))
	assert.Equal(t, "a = 2\n", out.String())
}

// historyRuns returns every run in the configured history database.
func historyRuns(t *testing.T) []history.Run {
	t.Helper()
	store, err := history.Open(t.Context(), getConfig().History.Path, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.List(t.Context(), 0)
	require.NoError(t, err)
	return runs
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
