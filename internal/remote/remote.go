// Package remote talks to the release server over ssh and rsync.
package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/RookieDailyLi/akka/internal/errors"
	"github.com/RookieDailyLi/akka/internal/run"
)

// Server addresses the release server and the site path on it
type Server struct {
	runner run.Runner
	host   string
	path   string
}

// NewServer creates a handle for the release server
func NewServer(runner run.Runner, host, path string) *Server {
	return &Server{runner: runner, host: host, path: path}
}

// Host returns the server address
func (s *Server) Host() string {
	return s.host
}

// Probe checks the server is reachable with a lightweight remote command
func (s *Server) Probe(ctx context.Context) error {
	if err := s.runner.Run(ctx, "", "ssh", s.host, "echo", "ok"); err != nil {
		return errors.New("remote-probe", fmt.Errorf("release server %s is not reachable: %w", s.host, err))
	}
	return nil
}

// PublishDocs syncs the generated site to the server path
func (s *Server) PublishDocs(ctx context.Context, docsDir string) error {
	src := strings.TrimSuffix(docsDir, "/") + "/"
	dst := fmt.Sprintf("%s:%s/", s.host, s.path)
	if err := s.runner.Run(ctx, "", "rsync", "-az", src, dst); err != nil {
		return errors.New("remote-docs", fmt.Errorf("failed to sync docs to %s: %w", dst, err))
	}
	return nil
}

// CommitSite records the site update in the server-side git repository
func (s *Server) CommitSite(ctx context.Context, version string) error {
	script := fmt.Sprintf("cd %s && git add -A && git commit -m 'Release %s'", s.path, version)
	if err := s.runner.Run(ctx, "", "ssh", s.host, script); err != nil {
		return errors.New("remote-commit", fmt.Errorf("failed to commit site update on %s: %w", s.host, err))
	}
	return nil
}
