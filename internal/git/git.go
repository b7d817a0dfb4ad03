package git

import (
	"context"
	"fmt"

	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/run"
)

// Client performs git operations in a single repository directory
type Client struct {
	runner run.Runner
	dir    string
}

// NewClient creates a git client for the repository at dir.
// An empty dir means the current working directory.
func NewClient(runner run.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

// Status returns the porcelain status output. An empty string means the
// working tree is clean: no tracked modifications and no untracked files.
func (c *Client) Status(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, c.dir, "git", "status", "--porcelain")
	if err != nil {
		return "", errors.New("git-status", fmt.Errorf("failed to query working tree status: %w", err))
	}
	return out, nil
}

// IsClean reports whether the working tree has no uncommitted changes
func (c *Client) IsClean(ctx context.Context) (bool, error) {
	out, err := c.Status(ctx)
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// CleanUntracked recursively deletes all untracked and ignored files.
// This is irreversible; callers must confirm with the operator first.
func (c *Client) CleanUntracked(ctx context.Context) error {
	if err := c.runner.Run(ctx, c.dir, "git", "clean", "-fdx"); err != nil {
		return errors.New("git-clean", fmt.Errorf("failed to remove untracked files: %w", err))
	}
	return nil
}

// ResetHard discards all changes to tracked files since the last commit
func (c *Client) ResetHard(ctx context.Context) error {
	if err := c.runner.Run(ctx, c.dir, "git", "reset", "--hard", "HEAD"); err != nil {
		return errors.New("git-reset", fmt.Errorf("failed to reset working tree: %w", err))
	}
	return nil
}

// Push pushes the given branch to origin
func (c *Client) Push(ctx context.Context, branch string) error {
	if err := c.runner.Run(ctx, c.dir, "git", "push", "origin", branch); err != nil {
		return errors.New("git-push", fmt.Errorf("failed to push %s to origin: %w", branch, err))
	}
	return nil
}

// PushTags pushes all local tags to origin
func (c *Client) PushTags(ctx context.Context) error {
	if err := c.runner.Run(ctx, c.dir, "git", "push", "origin", "--tags"); err != nil {
		return errors.New("git-push", fmt.Errorf("failed to push tags to origin: %w", err))
	}
	return nil
}
