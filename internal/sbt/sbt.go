// Package sbt drives the sbt build tool for the release workflow.
//
// sbt is an opaque collaborator: only invocation and exit status are
// observed. Extra flags can be supplied through the release
// configuration for every invocation.
package sbt

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/run"
)

const (
	// MaxVersionLen guards against publishing from an un-tagged commit.
	// Release versions are short tags like "2.6.20"; dynamic versions
	// derived from untagged commits are much longer.
	MaxVersionLen = 6
)

// ansiRegex matches terminal escape sequences sbt mixes into its output
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// infoPrefixRegex matches sbt's log-level line prefix
var infoPrefixRegex = regexp.MustCompile(`^\[\w+\]\s*`)

// Driver invokes sbt in a project directory
type Driver struct {
	runner run.Runner
	dir    string
	opts   []string
}

// NewDriver creates an sbt driver. extraOpts holds whitespace-separated
// flags prepended to every invocation.
func NewDriver(runner run.Runner, dir string, extraOpts string) *Driver {
	return &Driver{
		runner: runner,
		dir:    dir,
		opts:   strings.Fields(extraOpts),
	}
}

func (d *Driver) args(tasks ...string) []string {
	return append(append([]string{}, d.opts...), tasks...)
}

// Version resolves the project version from sbt output and rejects
// version strings longer than MaxVersionLen.
func (d *Driver) Version(ctx context.Context) (string, error) {
	out, err := d.runner.Output(ctx, d.dir, "sbt", d.args("version")...)
	if err != nil {
		return "", errors.New("sbt-version", fmt.Errorf("failed to query project version: %w", err))
	}

	version := ParseVersion(out)
	if version == "" {
		return "", errors.New("sbt-version", fmt.Errorf("no version in sbt output"))
	}
	if len(version) > MaxVersionLen {
		return "", errors.New("sbt-version",
			fmt.Errorf("%w: %q", errors.ErrVersionTooLong, version))
	}
	return version, nil
}

// ParseVersion extracts the version from `sbt version` output: the last
// non-empty line, with escape codes and the log-level prefix stripped.
func ParseVersion(out string) string {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(ansiRegex.ReplaceAllString(lines[i], ""))
		if line == "" {
			continue
		}
		return strings.TrimSpace(infoPrefixRegex.ReplaceAllString(line, ""))
	}
	return ""
}

// Clean removes all build output
func (d *Driver) Clean(ctx context.Context) error {
	if err := d.runner.Run(ctx, d.dir, "sbt", d.args("clean")...); err != nil {
		return errors.New("sbt-clean", fmt.Errorf("clean failed: %w", err))
	}
	return nil
}

// ReportBinaryIssues runs the binary-compatibility report across all
// configured cross builds.
func (d *Driver) ReportBinaryIssues(ctx context.Context) error {
	if err := d.runner.Run(ctx, d.dir, "sbt", d.args("+mimaReportBinaryIssues")...); err != nil {
		return errors.New("sbt-mima", fmt.Errorf("binary compatibility report failed: %w", err))
	}
	return nil
}

// PublishSigned builds and publishes signed artifacts across all
// configured cross builds.
func (d *Driver) PublishSigned(ctx context.Context) error {
	if err := d.runner.Run(ctx, d.dir, "sbt", d.args("+publishSigned")...); err != nil {
		return errors.New("sbt-publish", fmt.Errorf("signed publish failed: %w", err))
	}
	return nil
}

// CheckLicensePolicies runs the third-party license and policy check
func (d *Driver) CheckLicensePolicies(ctx context.Context) error {
	if err := d.runner.Run(ctx, d.dir, "sbt", d.args("whitesourceCheckPolicies")...); err != nil {
		return errors.New("sbt-policy", fmt.Errorf("license policy check failed: %w", err))
	}
	return nil
}
