package commands

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand_Plain(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{
			name: "release",
			info: BuildInfo{Version: "1.2.3", BuildDate: "2026-01-02", GitCommit: "abc123"},
			want: "leaplang v1.2.3\ncommit abc123, built 2026-01-02 with " + runtime.Version() + "\n",
		},
		{
			name: "dev build",
			info: BuildInfo{Version: "dev", BuildDate: "unknown", GitCommit: "unknown"},
			want: "leaplang vdev\ncommit unknown, built unknown with " + runtime.Version() + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, "")
			out, errOut, err := execute(NewVersionCommand(tt.info))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Empty(t, errOut)
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	useConfig(t, "format: json\n")

	out, _, err := execute(NewVersionCommand(BuildInfo{Version: "0.3.0", GitCommit: "f00d"}))
	require.NoError(t, err)

	var got BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0.3.0", got.Version)
	assert.Equal(t, "f00d", got.GitCommit)
	assert.Equal(t, runtime.Version(), got.GoVersion)
}

func TestVersionCommand_RejectsArgs(t *testing.T) {
	useConfig(t, "")
	_, _, err := execute(NewVersionCommand(BuildInfo{Version: "x"}), "extra")
	assert.Error(t, err)
}
