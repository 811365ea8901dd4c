// Package gogit answers repository root, branch and remote queries in-process
// through go-git instead of spawning the git executable.
package gogit
