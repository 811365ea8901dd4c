// Package dependencies resolves the collaborators commands need, falling back
// to production implementations when a caller does not inject its own.
package dependencies
