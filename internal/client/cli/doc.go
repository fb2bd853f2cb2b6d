// Package cli provides the smarttask command-line client.
//
// It wires configuration, local storage, the task API and the views into a
// cobra command tree and an interactive shell. Typical flow: resolve the
// stored session, prompt for credentials when a command needs a user, then
// render the dashboard.
//
// Key features:
//   - Register / Login / Logout
//   - Task list with filters, add, delete and complete
//   - AI suggestion of the best time to work
//   - Completion-time chart
//   - Voice (transcript) intake of new tasks
//   - Light and dark themes
//
// The shell is started with `smarttask shell` (or bare `smarttask`) and
// blocks until the user exits. See App, NewRootCmd and runREPL for details.
package cli
