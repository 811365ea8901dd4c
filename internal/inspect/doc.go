// Package inspect provides the inspect command, which reports the repository
// root, checked-out branch and remotes for each requested directory.
package inspect
