// Package preflight validates the release environment before anything runs.
//
// Checks are fail-fast: a missing tool or an old Java runtime aborts the
// release before any git or network operation takes place.
package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/RookieDailyLi/akka/internal/errors"
)

const (
	// MinJavaMajor is the minimum supported Java major version
	MinJavaMajor = 8
)

// RequiredTools lists the executables the release workflow shells out to
var RequiredTools = []string{"git", "sbt", "rsync", "tar"}

// lookPath is a variable so it can be mocked in tests
var lookPath = exec.LookPath

// javaVersionOutput is a variable so it can be mocked in tests.
// `java -version` reports on stderr, so combined output is captured.
var javaVersionOutput = func(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "java", "-version").CombinedOutput()
	return string(out), err
}

var versionRegex = regexp.MustCompile(`version "([^"]+)"`)

// Check verifies all required tools are installed and the Java runtime
// is recent enough. The first failure is returned.
func Check(ctx context.Context) error {
	for _, tool := range RequiredTools {
		if _, err := lookPath(tool); err != nil {
			return errors.New("preflight",
				fmt.Errorf("%w: %s is not installed or not on PATH", errors.ErrMissingTool, tool))
		}
	}
	return checkJava(ctx)
}

func checkJava(ctx context.Context) error {
	out, err := javaVersionOutput(ctx)
	if err != nil {
		return errors.New("preflight",
			fmt.Errorf("%w: java is not installed or not on PATH", errors.ErrMissingTool))
	}

	major, err := parseJavaMajor(out)
	if err != nil {
		return errors.New("preflight", err)
	}
	if major < MinJavaMajor {
		return errors.New("preflight",
			fmt.Errorf("%w: found Java %d, need at least %d", errors.ErrRuntimeVersion, major, MinJavaMajor))
	}
	return nil
}

// parseJavaMajor extracts the major version from `java -version` output.
// Both the legacy "1.8.0_292" and the modern "17.0.2" schemes are handled.
func parseJavaMajor(out string) (int, error) {
	matches := versionRegex.FindStringSubmatch(out)
	if matches == nil {
		return 0, fmt.Errorf("could not parse java version from output: %q", strings.TrimSpace(out))
	}

	parts := strings.Split(matches[1], ".")
	idx := 0
	if parts[0] == "1" && len(parts) > 1 {
		idx = 1
	}

	// Strip any trailing qualifier such as "8u292" or "11-ea"
	numeric := parts[idx]
	if i := strings.IndexFunc(numeric, func(r rune) bool { return r < '0' || r > '9' }); i > 0 {
		numeric = numeric[:i]
	}

	major, err := strconv.Atoi(numeric)
	if err != nil {
		return 0, fmt.Errorf("could not parse java major version %q: %w", matches[1], err)
	}
	return major, nil
}
