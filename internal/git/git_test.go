package git

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and serves canned results
type fakeRunner struct {
	calls   []string
	outputs map[string]string
	fail    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		fail:    make(map[string]error),
	}
}

func key(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}

func (f *fakeRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	k := key(name, args)
	f.calls = append(f.calls, k)
	return f.fail[k]
}

func (f *fakeRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	k := key(name, args)
	f.calls = append(f.calls, k)
	if err := f.fail[k]; err != nil {
		return "", err
	}
	return f.outputs[k], nil
}

func TestStatus(t *testing.T) {
	runner := newFakeRunner()
	runner.outputs["git status --porcelain"] = " M build.sbt\n?? scratch.txt"

	client := NewClient(runner, "")
	out, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "build.sbt")
}

func TestIsClean(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{name: "clean tree", status: "", want: true},
		{name: "modified file", status: " M build.sbt", want: false},
		{name: "untracked file", status: "?? notes.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			runner.outputs["git status --porcelain"] = tt.status

			client := NewClient(runner, "")
			clean, err := client.IsClean(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, clean)
		})
	}
}

func TestStatusError(t *testing.T) {
	runner := newFakeRunner()
	runner.fail["git status --porcelain"] = fmt.Errorf("not a git repository")

	client := NewClient(runner, "")
	_, err := client.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "working tree status")
}

func TestDestructiveOperations(t *testing.T) {
	runner := newFakeRunner()
	client := NewClient(runner, "")
	ctx := context.Background()

	require.NoError(t, client.CleanUntracked(ctx))
	require.NoError(t, client.ResetHard(ctx))

	assert.Equal(t, []string{
		"git clean -fdx",
		"git reset --hard HEAD",
	}, runner.calls)
}

func TestPush(t *testing.T) {
	runner := newFakeRunner()
	client := NewClient(runner, "")
	ctx := context.Background()

	require.NoError(t, client.Push(ctx, "main"))
	require.NoError(t, client.PushTags(ctx))

	assert.Equal(t, []string{
		"git push origin main",
		"git push origin --tags",
	}, runner.calls)
}

func TestPushFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.fail["git push origin main"] = fmt.Errorf("remote rejected")

	client := NewClient(runner, "")
	err := client.Push(context.Background(), "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push main to origin")
}
