package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RookieDailyLi/akka/internal/config"
	"github.com/RookieDailyLi/akka/internal/logging"
	"github.com/RookieDailyLi/akka/internal/release"
	"github.com/RookieDailyLi/akka/internal/run"
)

type rootOptions struct {
	server     string
	path       string
	docsDir    string
	branch     string
	configFile string
	verbosity  int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "akka-release",
		Short: "Release automation for the Akka project",
		Long: `Automates the release workflow: verifies environment preconditions,
cleans the working tree, runs the binary-compatibility report, publishes
signed artifacts, and pushes docs and git state to the release server.

Failures before the push to origin roll the working tree back to its
last commit. Failures after the push raise an escalated alert instead,
since remote state may already be partially published.`,
		Example: `  akka-release
  akka-release --server relay.example.org --path www2
  akka-release --config .akka-release.json -v`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.server, "server", "s", "", "Release server address (default "+config.DefaultServer+")")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Path on the release server (default "+config.DefaultPath+")")
	cmd.Flags().StringVar(&opts.docsDir, "docs-dir", "", "Local directory holding the generated site (default "+config.DefaultDocsDir+")")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Branch to push to origin (default main)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Release profile JSON file")
	cmd.Flags().CountVarP(&opts.verbosity, "verbose", "v", "Increase diagnostic output (-v, -vv)")

	return cmd
}

// buildConfig assembles the immutable run configuration: defaults,
// overridden by the profile file, overridden by flags.
func buildConfig(opts *rootOptions) (*config.ReleaseConfig, error) {
	cfg := config.DefaultReleaseConfig()
	if opts.configFile != "" {
		loaded, err := config.LoadReleaseConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.server != "" {
		cfg.Server = opts.server
	}
	if opts.path != "" {
		cfg.Path = opts.path
	}
	if opts.docsDir != "" {
		cfg.DocsDir = opts.docsDir
	}
	if opts.branch != "" {
		cfg.Branch = opts.branch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.LoadSbtOpts()
	return cfg, nil
}

func runRelease(cmd *cobra.Command, opts *rootOptions) error {
	logging.Setup(opts.verbosity, os.Stderr)

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	// A signal cancels the context; the in-flight external command is
	// killed and the failing step recovers according to the phase.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	defer stop()

	rel := release.New(cfg, run.NewExecRunner())
	return rel.Execute(ctx)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "akka-release: %v\n", err)
		os.Exit(1)
	}
}
