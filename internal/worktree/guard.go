// Package worktree guards the local working tree before a release.
//
// A release must start from a committed state: any tracked modification
// or untracked file aborts the run. The tree is then scrubbed of
// untracked and ignored files, but only after the operator types the
// literal "yes" at the prompt, since that deletion is irreversible.
package worktree

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/git"
)

// Guard validates and cleans the working tree
type Guard struct {
	git    *git.Client
	in     io.Reader
	out    io.Writer
	styled bool
}

// NewGuard creates a guard prompting on the process streams
func NewGuard(client *git.Client) *Guard {
	return &Guard{
		git:    client,
		in:     os.Stdin,
		out:    os.Stdout,
		styled: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewGuardWithStreams creates a guard with explicit streams, used in tests
func NewGuardWithStreams(client *git.Client, in io.Reader, out io.Writer) *Guard {
	return &Guard{git: client, in: in, out: out}
}

// EnsureClean aborts with the status output if the tree has uncommitted
// changes or untracked files.
func (g *Guard) EnsureClean(ctx context.Context) error {
	status, err := g.git.Status(ctx)
	if err != nil {
		return err
	}
	if status != "" {
		fmt.Fprintln(g.out, status)
		return errors.New("worktree", errors.ErrDirtyWorkTree)
	}
	return nil
}

// ConfirmAndClean asks the operator for confirmation, then deletes all
// untracked and ignored files. Only the exact answer "yes" proceeds.
func (g *Guard) ConfirmAndClean(ctx context.Context) error {
	prompt := "This will DELETE all untracked and ignored files from the working tree. Type 'yes' to continue: "
	if g.styled {
		prompt = pterm.Warning.Sprint(prompt)
	}
	fmt.Fprint(g.out, prompt)

	answer, err := bufio.NewReader(g.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.New("worktree", fmt.Errorf("failed to read confirmation: %w", err))
	}

	if strings.TrimRight(answer, "\r\n") != "yes" {
		return errors.New("worktree", errors.ErrCleanDeclined)
	}

	return g.git.CleanUntracked(ctx)
}
