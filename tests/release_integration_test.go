package tests

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RookieDailyLi/akka/internal/config"
	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/release"
	"github.com/RookieDailyLi/akka/internal/run"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests rely on POSIX shell stubs")
	}
}

func testConfig() *config.ReleaseConfig {
	return &config.ReleaseConfig{
		Server:  "relay.example.org",
		Path:    "www2",
		DocsDir: "target/site",
		Branch:  "main",
	}
}

func newIntegrationRelease(cfg *config.ReleaseConfig, repoDir string, confirm string) (*release.Release, *bytes.Buffer) {
	var out bytes.Buffer
	runner := &run.ExecRunner{Stdout: &out, Stderr: &out}
	rel := release.NewWithStreams(cfg, runner, repoDir, strings.NewReader(confirm), &out)
	return rel, &out
}

func TestReleaseFullRun(t *testing.T) {
	skipOnWindows(t)

	repoDir, _ := SetupReleaseRepo(t)
	SetupStubTools(t, repoDir, "2.6.20", "", "")

	// Ignored file that the confirmed cleanup must delete
	scratch := filepath.Join(repoDir, "scratch.txt")
	require.NoError(t, os.WriteFile(scratch, []byte("scratch"), 0644))

	rel, out := newIntegrationRelease(testConfig(), repoDir, "yes\n")
	err := rel.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2.6.20", rel.Version())
	assert.False(t, FileExists(scratch), "ignored file should be cleaned before the build")
	assert.Contains(t, out.String(), "Release 2.6.20 complete")
}

func TestReleaseDirtyTreeAborts(t *testing.T) {
	skipOnWindows(t)

	repoDir, _ := SetupReleaseRepo(t)
	SetupStubTools(t, repoDir, "2.6.20", "", "")

	// Modify a tracked file
	buildFile := filepath.Join(repoDir, "build.sbt")
	require.NoError(t, os.WriteFile(buildFile, []byte("name := \"changed\"\n"), 0644))

	rel, out := newIntegrationRelease(testConfig(), repoDir, "yes\n")
	err := rel.Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDirtyWorkTree)
	assert.Contains(t, out.String(), "build.sbt", "status output shown to the operator")
	assert.NotContains(t, out.String(), "DELETE", "no destructive prompt on a dirty tree")
}

func TestReleaseDeclinedConfirmationKeepsFiles(t *testing.T) {
	skipOnWindows(t)

	repoDir, _ := SetupReleaseRepo(t)
	SetupStubTools(t, repoDir, "2.6.20", "", "")

	rel, _ := newIntegrationRelease(testConfig(), repoDir, "no\n")
	err := rel.Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCleanDeclined)
}

func TestReleasePrePushFailureRollsBack(t *testing.T) {
	skipOnWindows(t)

	repoDir, _ := SetupReleaseRepo(t)
	SetupStubTools(t, repoDir, "2.6.20", "mimaReportBinaryIssues", "")

	rel, _ := newIntegrationRelease(testConfig(), repoDir, "yes\n")
	err := rel.Execute(context.Background())

	require.Error(t, err)
	assert.False(t, errors.IsPostPush(err))
	assert.False(t, FileExists(filepath.Join(repoDir, "target", "junk.txt")),
		"rollback should clean build output left by the failed step")
}

func TestReleasePostPushFailureLeavesTreeUntouched(t *testing.T) {
	skipOnWindows(t)

	repoDir, _ := SetupReleaseRepo(t)
	SetupStubTools(t, repoDir, "2.6.20", "", "rsync")

	rel, out := newIntegrationRelease(testConfig(), repoDir, "yes\n")
	err := rel.Execute(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsPostPush(err))
	assert.True(t, FileExists(filepath.Join(repoDir, "target", "junk.txt")),
		"no rollback after the push to origin")
	assert.Contains(t, out.String(), "RELEASE FAILED AFTER PUSH")
}

func TestReleaseOversizedVersion(t *testing.T) {
	skipOnWindows(t)

	repoDir, _ := SetupReleaseRepo(t)
	SetupStubTools(t, repoDir, "2.6.20+12-abc1234-SNAPSHOT", "", "")

	rel, _ := newIntegrationRelease(testConfig(), repoDir, "yes\n")
	err := rel.Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrVersionTooLong)
}
