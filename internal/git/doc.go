// Package git provides the git operations used by the release workflow.
//
// This package wraps the git executable for status queries, destructive
// working-tree cleanup, rollback resets, and pushing release state to
// origin. It is designed to be used by higher-level packages that
// implement the working-tree guard and the recovery coordinator.
//
// Key Components:
//
// Client: performs all operations against a single repository directory
// through a run.Runner, so tests can substitute a fake command runner.
//
// Status/IsClean: porcelain status query; the guard refuses to release
// from a dirty tree.
//
// CleanUntracked/ResetHard: the destructive operations. CleanUntracked
// removes untracked and ignored files recursively; ResetHard discards
// tracked changes. Together they form the rollback used when a step
// fails before anything was pushed.
//
// Push/PushTags: publish commits and tags to origin. Once either begins,
// failures are no longer rolled back.
//
// Error Handling:
//
// All operations return detailed errors wrapped with context about the
// operation that failed.
//
// Thread Safety:
//
// Git operations are not guaranteed to be thread-safe. The release
// workflow runs them strictly sequentially.
package git
