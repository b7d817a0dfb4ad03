package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runCommand executes a command in the specified directory
func runCommand(dir string, command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test",
		"GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_GLOBAL=/dev/null", // Ignore global config
		"GIT_CONFIG_SYSTEM=/dev/null", // Ignore system config
	)
	return cmd.Run()
}

// SetupGitConfig configures git identity for a test repository
func SetupGitConfig(t *testing.T, dir string) {
	t.Helper()

	commands := [][]string{
		{"config", "user.name", "test"},
		{"config", "user.email", "test@example.com"},
		{"config", "init.defaultBranch", "main"},
	}

	for _, args := range commands {
		if err := runCommand(dir, "git", args...); err != nil {
			t.Fatalf("Failed to configure git %v: %v", args, err)
		}
	}
}

// SetupReleaseRepo creates a git repository with one commit on main and
// a bare origin remote, mirroring the state a release starts from.
func SetupReleaseRepo(t *testing.T) (repoDir string, originDir string) {
	t.Helper()

	baseDir := t.TempDir()
	repoDir = filepath.Join(baseDir, "project")
	originDir = filepath.Join(baseDir, "origin.git")

	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("Failed to create repo directory: %v", err)
	}
	if err := runCommand(repoDir, "git", "init"); err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	SetupGitConfig(t, repoDir)
	if err := runCommand(repoDir, "git", "checkout", "-b", "main"); err != nil {
		t.Fatalf("Failed to create main branch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(repoDir, "build.sbt"), []byte("name := \"akka\"\n"), 0644); err != nil {
		t.Fatalf("Failed to create build file: %v", err)
	}
	// Ignored entries keep the status clean while giving the cleanup
	// and rollback something observable to delete.
	if err := os.WriteFile(filepath.Join(repoDir, ".gitignore"), []byte("target/\nscratch.txt\n"), 0644); err != nil {
		t.Fatalf("Failed to create .gitignore: %v", err)
	}
	if err := runCommand(repoDir, "git", "add", "build.sbt", ".gitignore"); err != nil {
		t.Fatalf("Failed to add initial files: %v", err)
	}
	if err := runCommand(repoDir, "git", "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	if err := os.MkdirAll(originDir, 0755); err != nil {
		t.Fatalf("Failed to create origin directory: %v", err)
	}
	if err := runCommand(originDir, "git", "init", "--bare"); err != nil {
		t.Fatalf("Failed to initialize origin: %v", err)
	}
	if err := runCommand(repoDir, "git", "remote", "add", "origin", originDir); err != nil {
		t.Fatalf("Failed to add origin remote: %v", err)
	}

	return repoDir, originDir
}

// WriteStubTool installs an executable shell script under dir. Tests
// prepend dir to PATH so stubs shadow the real sbt, ssh, rsync and tar.
func WriteStubTool(t *testing.T, dir string, name string, script string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write stub %s: %v", name, err)
	}
}

// SetupStubTools creates a directory of stub external tools and puts it
// first on PATH. The sbt stub answers version queries with version and
// touches target/junk.txt on build tasks so rollback behavior is
// observable. failTask names an sbt task that should exit non-zero.
func SetupStubTools(t *testing.T, repoDir string, version string, failTask string, failTool string) string {
	t.Helper()

	binDir := t.TempDir()

	sbtScript := `case "$*" in
  *version*) echo '[info] ` + version + `' ;;
  *) mkdir -p "` + repoDir + `/target" && touch "` + repoDir + `/target/junk.txt" ;;
esac`
	if failTask != "" {
		sbtScript = `case "$*" in
  *version*) echo '[info] ` + version + `' ;;
  *` + failTask + `*) mkdir -p "` + repoDir + `/target" && touch "` + repoDir + `/target/junk.txt"; exit 1 ;;
  *) mkdir -p "` + repoDir + `/target" && touch "` + repoDir + `/target/junk.txt" ;;
esac`
	}
	WriteStubTool(t, binDir, "sbt", sbtScript)

	for _, tool := range []string{"ssh", "rsync", "tar"} {
		script := "exit 0"
		if tool == failTool {
			script = "exit 1"
		}
		WriteStubTool(t, binDir, tool, script)
	}
	WriteStubTool(t, binDir, "java", `echo 'openjdk version "17.0.2" 2022-01-18' >&2`)

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return binDir
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
