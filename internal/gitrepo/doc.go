// Package gitrepo holds helpers for describing Git remotes.
package gitrepo
