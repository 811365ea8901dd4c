// Package execshell runs external tools on behalf of the repository lookups.
//
// ShellExecutor wraps a CommandRunner with zap logging and typed failures:
// CommandFailedError for non-zero exits and CommandExecutionError when the
// process could not run at all. OSCommandRunner is the os/exec-backed runner.
package execshell
