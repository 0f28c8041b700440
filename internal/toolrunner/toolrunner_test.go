package toolrunner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run(t *testing.T) {
	if !LookPath("sh") {
		t.Skip("sh not available")
	}

	var out bytes.Buffer
	r := NewRunner(&out)
	dir := t.TempDir()

	res, err := r.Run(context.Background(), dir, "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", out.String())

	res, err = r.Run(context.Background(), dir, "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestExecRunner_Cancelled(t *testing.T) {
	if !LookPath("sleep") {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(&bytes.Buffer{}).Run(ctx, t.TempDir(), "sleep", "5")
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Fail: map[string]bool{"npx shadcn@latest add table": true}}

	_, err := r.Run(context.Background(), "/tmp/web", "npx", "shadcn@latest", "add", "button", "-y")
	require.NoError(t, err)
	_, err = r.Run(context.Background(), "/tmp/web", "npx", "shadcn@latest", "add", "table", "-y")
	require.Error(t, err)

	assert.Equal(t, []string{
		"npx shadcn@latest add button -y",
		"npx shadcn@latest add table -y",
	}, r.Lines())
	assert.Equal(t, "/tmp/web", r.Calls()[0].Dir)
}
