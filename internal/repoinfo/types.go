package repoinfo

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/temirov/gitinfo/internal/execshell"
)

// InspectionStatus distinguishes directories inside a repository from directories outside any repository.
type InspectionStatus string

// Supported inspection statuses.
const (
	InspectionStatusRepository    InspectionStatus = "repository"
	InspectionStatusNotRepository InspectionStatus = "not_repository"
)

// GitExecutor exposes the subset of shell execution used by the git-backed resolvers.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RootResolver locates the top-level directory of the repository enclosing a directory.
// An empty root with a nil error means the directory is not inside a repository.
type RootResolver interface {
	ResolveRoot(executionContext context.Context, directory string) (string, error)
}

// BranchResolver determines the checked-out branch of the repository enclosing a directory.
type BranchResolver interface {
	ResolveBranch(executionContext context.Context, directory string) (Branch, error)
}

// RemoteResolver determines the configured remotes of the repository enclosing a directory.
type RemoteResolver interface {
	ResolveRemotes(executionContext context.Context, directory string) (Remotes, error)
}

// Branch is either a checked-out branch name or the explicit absence of one.
type Branch struct {
	name       string
	checkedOut bool
}

// CheckedOutBranch constructs a Branch naming the checked-out branch.
func CheckedOutBranch(name string) Branch {
	return Branch{name: name, checkedOut: true}
}

// NoBranch returns the value used when the repository has no commits and therefore no current branch.
func NoBranch() Branch {
	return Branch{}
}

// Name returns the branch name and whether a branch is checked out.
func (branch Branch) Name() (string, bool) {
	return branch.name, branch.checkedOut
}

// IsNone reports whether no branch is checked out.
func (branch Branch) IsNone() bool {
	return !branch.checkedOut
}

// Remotes is either a mapping from remote name to URL or the explicit absence of remotes.
type Remotes struct {
	endpoints map[string]string
}

// ConfiguredRemotes constructs Remotes from the provided mapping. An empty mapping yields NoRemotes.
func ConfiguredRemotes(endpoints map[string]string) Remotes {
	if len(endpoints) == 0 {
		return NoRemotes()
	}
	duplicated := make(map[string]string, len(endpoints))
	for remoteName, remoteURL := range endpoints {
		duplicated[remoteName] = remoteURL
	}
	return Remotes{endpoints: duplicated}
}

// NoRemotes returns the value used when the repository has no configured remotes.
func NoRemotes() Remotes {
	return Remotes{}
}

// IsNone reports whether no remotes are configured.
func (remotes Remotes) IsNone() bool {
	return len(remotes.endpoints) == 0
}

// URL returns the URL registered for the named remote.
func (remotes Remotes) URL(remoteName string) (string, bool) {
	remoteURL, exists := remotes.endpoints[remoteName]
	return remoteURL, exists
}

// Names returns remote names in lexical order.
func (remotes Remotes) Names() []string {
	names := make([]string, 0, len(remotes.endpoints))
	for remoteName := range remotes.endpoints {
		names = append(names, remoteName)
	}
	sort.Strings(names)
	return names
}

// Endpoints returns a copy of the name to URL mapping, or nil when no remotes are configured.
func (remotes Remotes) Endpoints() map[string]string {
	if remotes.IsNone() {
		return nil
	}
	duplicated := make(map[string]string, len(remotes.endpoints))
	for remoteName, remoteURL := range remotes.endpoints {
		duplicated[remoteName] = remoteURL
	}
	return duplicated
}

// RepoInfo describes the repository enclosing an inspected directory.
type RepoInfo struct {
	Root                string
	Name                string
	ParentDirectoryName string
	Branch              Branch
	Remotes             Remotes
}

// NewRepoInfo derives the name and parent directory name from the repository root.
func NewRepoInfo(root string, branch Branch, remotes Remotes) RepoInfo {
	nativeRoot := filepath.FromSlash(root)
	return RepoInfo{
		Root:                root,
		Name:                filepath.Base(nativeRoot),
		ParentDirectoryName: filepath.Base(filepath.Dir(nativeRoot)),
		Branch:              branch,
		Remotes:             remotes,
	}
}

// Inspection is the outcome of inspecting a single directory.
type Inspection struct {
	Directory  string
	Status     InspectionStatus
	repository RepoInfo
}

// RepositoryInspection records a directory found inside the described repository.
func RepositoryInspection(directory string, repository RepoInfo) Inspection {
	return Inspection{Directory: directory, Status: InspectionStatusRepository, repository: repository}
}

// AbsentInspection records a directory that is not inside any repository.
func AbsentInspection(directory string) Inspection {
	return Inspection{Directory: directory, Status: InspectionStatusNotRepository}
}

// Repository returns the repository metadata and whether the directory is inside a repository.
func (inspection Inspection) Repository() (RepoInfo, bool) {
	if inspection.Status != InspectionStatusRepository {
		return RepoInfo{}, false
	}
	return inspection.repository, true
}
