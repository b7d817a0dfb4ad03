package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/git"
	"github.com/RookieDailyLi/akka/internal/logging"
)

// rollbackTimeout bounds the recovery git commands. Recovery runs on a
// fresh context: the run context is usually already cancelled or
// poisoned when recovery starts.
const rollbackTimeout = 2 * time.Minute

// Coordinator applies the phase-appropriate recovery strategy to failed
// steps. The phase transition to PostPush is one-way.
type Coordinator struct {
	phase Phase
	git   *git.Client
	out   io.Writer
}

// NewCoordinator creates a recovery coordinator starting in PrePush
func NewCoordinator(client *git.Client) *Coordinator {
	return &Coordinator{git: client, out: os.Stdout}
}

// NewCoordinatorWithWriter creates a coordinator writing to w, used in tests
func NewCoordinatorWithWriter(client *git.Client, w io.Writer) *Coordinator {
	return &Coordinator{git: client, out: w}
}

// Phase returns the currently active recovery phase
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// EnterPostPush switches to post-push recovery. There is no way back.
func (c *Coordinator) EnterPostPush() {
	c.phase = PostPush
}

// Run executes a release step. On failure the phase-appropriate recovery
// runs and a phase-tagged error is returned.
func (c *Coordinator) Run(ctx context.Context, step string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.Recover(step, err)
		return errors.NewStepError(step, c.phase == PostPush, err)
	}
	return nil
}

// Recover dispatches to rollback or escalation depending on the phase.
// It is also the handler for signal-interrupted runs.
func (c *Coordinator) Recover(step string, cause error) {
	logger := logging.GetLogger("recovery")
	logger.Error().Err(cause).Str("step", step).Stringer("phase", c.phase).Msg("Release step failed")

	if c.phase == PostPush {
		c.escalate(step, cause)
		return
	}
	c.rollback()
}

// rollback restores the working tree to its last-committed state. Both
// commands are attempted even if the first fails.
func (c *Coordinator) rollback() {
	fmt.Fprintln(c.out, "Rolling back working tree to last commit")

	ctx, cancel := context.WithTimeout(context.Background(), rollbackTimeout)
	defer cancel()

	logger := logging.GetLogger("recovery")
	if err := c.git.ResetHard(ctx); err != nil {
		logger.Error().Err(err).Msg("Rollback reset failed")
	}
	if err := c.git.CleanUntracked(ctx); err != nil {
		logger.Error().Err(err).Msg("Rollback clean failed")
	}
}

// escalate prints a highly visible alert. No rollback is attempted since
// remote artifacts or commits may already be partially published.
func (c *Coordinator) escalate(step string, cause error) {
	msg := fmt.Sprintf("Step %q failed after the push to origin.\n"+
		"Cause: %v\n\n"+
		"Remote artifacts or commits may be partially published.\n"+
		"No rollback was attempted. Inspect local and remote state manually.",
		step, cause)

	alert := pterm.DefaultBox.
		WithTitle("RELEASE FAILED AFTER PUSH").
		WithTitleTopCenter().
		WithBoxStyle(pterm.NewStyle(pterm.FgRed, pterm.Bold))

	fmt.Fprintln(c.out, alert.Sprint(msg))
}
