// Package release drives the release workflow from preflight checks to
// the remote site commit, with a two-phase recovery coordinator: local
// rollback while nothing has been pushed, escalated alert afterwards.
package release

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/RookieDailyLi/akka/internal/config"
	"github.com/RookieDailyLi/akka/internal/git"
	"github.com/RookieDailyLi/akka/internal/preflight"
	"github.com/RookieDailyLi/akka/internal/progress"
	"github.com/RookieDailyLi/akka/internal/remote"
	"github.com/RookieDailyLi/akka/internal/run"
	"github.com/RookieDailyLi/akka/internal/sbt"
	"github.com/RookieDailyLi/akka/internal/worktree"
)

// preflightCheck is a variable so it can be mocked in tests
var preflightCheck = preflight.Check

// Release orchestrates a full release run
type Release struct {
	cfg     *config.ReleaseConfig
	git     *git.Client
	sbt     *sbt.Driver
	server  *remote.Server
	guard   *worktree.Guard
	coord   *Coordinator
	tracker progress.Tracker
	out     io.Writer

	version string
}

// New wires a release against the real external tools, prompting and
// reporting on the process streams.
func New(cfg *config.ReleaseConfig, runner run.Runner) *Release {
	r := NewWithStreams(cfg, runner, "", os.Stdin, os.Stdout)
	r.guard = worktree.NewGuard(r.git)
	return r
}

// NewWithStreams wires a release with an explicit project directory and
// prompt/report streams, used by integration tests driving the workflow
// end to end. An empty dir means the current working directory.
func NewWithStreams(cfg *config.ReleaseConfig, runner run.Runner, dir string, in io.Reader, out io.Writer) *Release {
	gitClient := git.NewClient(runner, dir)
	return &Release{
		cfg:     cfg,
		git:     gitClient,
		sbt:     sbt.NewDriver(runner, dir, cfg.SbtOpts),
		server:  remote.NewServer(runner, cfg.Server, cfg.Path),
		guard:   worktree.NewGuardWithStreams(gitClient, in, out),
		coord:   NewCoordinatorWithWriter(gitClient, out),
		tracker: progress.NewConsoleTrackerWithWriter(out),
		out:     out,
	}
}

// Version returns the resolved release version, empty before resolution
func (r *Release) Version() string {
	return r.version
}

// Execute runs the whole workflow. Preconditions fail fast without
// recovery; once the steps start, failures route through the
// coordinator. Cancelling ctx kills the in-flight external command and
// the failing step recovers according to the current phase.
func (r *Release) Execute(ctx context.Context) error {
	// Preconditions: nothing has been mutated yet, fail fast.
	if err := preflightCheck(ctx); err != nil {
		return err
	}
	if err := r.guard.EnsureClean(ctx); err != nil {
		return err
	}
	if err := r.guard.ConfirmAndClean(ctx); err != nil {
		return err
	}

	if err := r.step(ctx, "resolve version", func(ctx context.Context) error {
		version, err := r.sbt.Version(ctx)
		if err != nil {
			return err
		}
		r.version = version
		fmt.Fprintf(r.out, "Releasing version %s\n", version)
		return nil
	}); err != nil {
		return err
	}

	if err := r.step(ctx, "probe release server", r.server.Probe); err != nil {
		return err
	}
	if err := r.step(ctx, "sbt clean", r.sbt.Clean); err != nil {
		return err
	}
	if err := r.step(ctx, "binary compatibility report", r.sbt.ReportBinaryIssues); err != nil {
		return err
	}

	// From here on remote state is mutated; failures escalate instead
	// of rolling back.
	if err := r.step(ctx, "push to origin", func(ctx context.Context) error {
		r.coord.EnterPostPush()
		if err := r.git.Push(ctx, r.cfg.Branch); err != nil {
			return err
		}
		return r.git.PushTags(ctx)
	}); err != nil {
		return err
	}

	if err := r.step(ctx, "publish signed artifacts", r.sbt.PublishSigned); err != nil {
		return err
	}
	if err := r.step(ctx, "license policy check", r.sbt.CheckLicensePolicies); err != nil {
		return err
	}
	if err := r.step(ctx, "publish docs", func(ctx context.Context) error {
		return r.server.PublishDocs(ctx, r.cfg.DocsDir)
	}); err != nil {
		return err
	}
	if err := r.step(ctx, "commit site on server", func(ctx context.Context) error {
		return r.server.CommitSite(ctx, r.version)
	}); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Release %s complete\n", r.version)
	return nil
}

func (r *Release) step(ctx context.Context, name string, fn func(context.Context) error) error {
	r.tracker.Start(name)
	if err := r.coord.Run(ctx, name, fn); err != nil {
		r.tracker.Error(err)
		return err
	}
	r.tracker.Complete()
	return nil
}
