package gogit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/temirov/gitinfo/internal/repoinfo"
)

const (
	detachedHeadTemplateConstant          = "(HEAD detached at %s)"
	abbreviatedHashLengthConstant         = 7
	directoryLogFieldNameConstant         = "directory"
	remoteLogFieldNameConstant            = "remote"
	notRepositoryLogMessageConstant       = "Directory is not inside a Git repository"
	remoteWithoutURLLogMessageConstant    = "Skipping remote without configured URLs"
	openRepositoryErrorTemplateConstant   = "unable to open repository at %s: %w"
	resolveDirectoryErrorTemplateConstant = "unable to resolve directory %s: %w"
	readHeadErrorTemplateConstant         = "unable to read HEAD in %s: %w"
	readRemotesErrorTemplateConstant      = "unable to list remotes in %s: %w"
	readWorktreeErrorTemplateConstant     = "unable to read worktree in %s: %w"
	remoteSectionNameConstant             = "remote"
	pushURLOptionNameConstant             = "pushurl"
)

// Resolver implements the root, branch and remote resolvers on top of go-git.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver constructs a go-git backed resolver.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger}
}

// ResolveRoot returns the worktree root enclosing directory, or an empty string when there is none.
func (resolver *Resolver) ResolveRoot(executionContext context.Context, directory string) (string, error) {
	repository, openError := resolver.open(executionContext, directory)
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			resolver.logger.Debug(notRepositoryLogMessageConstant, zap.String(directoryLogFieldNameConstant, directory))
			return "", nil
		}
		return "", openError
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return "", fmt.Errorf(readWorktreeErrorTemplateConstant, directory, worktreeError)
	}

	root := worktree.Filesystem.Root()
	if resolvedRoot, evaluationError := filepath.EvalSymlinks(root); evaluationError == nil {
		root = resolvedRoot
	}
	return filepath.ToSlash(root), nil
}

// ResolveBranch returns the checked-out branch, a detached HEAD description, or NoBranch for an unborn HEAD.
func (resolver *Resolver) ResolveBranch(executionContext context.Context, directory string) (repoinfo.Branch, error) {
	repository, openError := resolver.open(executionContext, directory)
	if openError != nil {
		return repoinfo.Branch{}, openError
	}

	headReference, headError := repository.Head()
	if headError != nil {
		if errors.Is(headError, plumbing.ErrReferenceNotFound) {
			return repoinfo.NoBranch(), nil
		}
		return repoinfo.Branch{}, fmt.Errorf(readHeadErrorTemplateConstant, directory, headError)
	}

	if headReference.Name().IsBranch() {
		return repoinfo.CheckedOutBranch(headReference.Name().Short()), nil
	}

	hashText := headReference.Hash().String()
	if len(hashText) > abbreviatedHashLengthConstant {
		hashText = hashText[:abbreviatedHashLengthConstant]
	}
	return repoinfo.CheckedOutBranch(fmt.Sprintf(detachedHeadTemplateConstant, hashText)), nil
}

// ResolveRemotes returns each configured remote with its last push URL, falling back to its last configured URL.
func (resolver *Resolver) ResolveRemotes(executionContext context.Context, directory string) (repoinfo.Remotes, error) {
	repository, openError := resolver.open(executionContext, directory)
	if openError != nil {
		return repoinfo.Remotes{}, openError
	}

	repositoryConfiguration, configurationError := repository.Config()
	if configurationError != nil {
		return repoinfo.Remotes{}, fmt.Errorf(readRemotesErrorTemplateConstant, directory, configurationError)
	}

	endpoints := make(map[string]string, len(repositoryConfiguration.Remotes))
	for remoteName, remoteConfiguration := range repositoryConfiguration.Remotes {
		pushURLs := configuredPushURLs(repositoryConfiguration, remoteName)
		if len(pushURLs) > 0 {
			endpoints[remoteName] = pushURLs[len(pushURLs)-1]
			continue
		}
		if len(remoteConfiguration.URLs) == 0 {
			resolver.logger.Debug(remoteWithoutURLLogMessageConstant,
				zap.String(directoryLogFieldNameConstant, directory),
				zap.String(remoteLogFieldNameConstant, remoteName),
			)
			continue
		}
		endpoints[remoteName] = remoteConfiguration.URLs[len(remoteConfiguration.URLs)-1]
	}

	return repoinfo.ConfiguredRemotes(endpoints), nil
}

// configuredPushURLs returns remote.<name>.pushurl values, which git lists on the push lines in place of the fetch URLs.
func configuredPushURLs(repositoryConfiguration *config.Config, remoteName string) []string {
	if repositoryConfiguration.Raw == nil || !repositoryConfiguration.Raw.HasSection(remoteSectionNameConstant) {
		return nil
	}
	remoteSection := repositoryConfiguration.Raw.Section(remoteSectionNameConstant)
	if !remoteSection.HasSubsection(remoteName) {
		return nil
	}
	return remoteSection.Subsection(remoteName).Options.GetAll(pushURLOptionNameConstant)
}

func (resolver *Resolver) open(executionContext context.Context, directory string) (*git.Repository, error) {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return nil, contextError
		}
	}

	absoluteDirectory, absoluteError := filepath.Abs(directory)
	if absoluteError != nil {
		return nil, fmt.Errorf(resolveDirectoryErrorTemplateConstant, directory, absoluteError)
	}

	repository, openError := git.PlainOpenWithOptions(absoluteDirectory, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return nil, openError
		}
		return nil, fmt.Errorf(openRepositoryErrorTemplateConstant, directory, openError)
	}
	return repository, nil
}
