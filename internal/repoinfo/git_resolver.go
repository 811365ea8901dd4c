package repoinfo

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitinfo/internal/execshell"
)

const (
	gitRevParseSubcommandConstant         = "rev-parse"
	gitShowTopLevelFlagConstant           = "--show-toplevel"
	gitBranchSubcommandConstant           = "branch"
	gitRemoteSubcommandConstant           = "remote"
	gitVerboseFlagConstant                = "--verbose"
	directoryLogFieldNameConstant         = "directory"
	skippedLineLogFieldNameConstant       = "line"
	notRepositoryLogMessageConstant       = "Directory is not inside a Git repository"
	malformedRemoteLineLogMessageConstant = "Skipping remote listing line without a name separator"
)

// ErrGitExecutorNotConfigured indicates the git resolver was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// GitCommandResolver answers root, branch and remote queries by running git in the inspected directory.
type GitCommandResolver struct {
	executor GitExecutor
	logger   *zap.Logger
}

// NewGitCommandResolver constructs a resolver backed by the provided executor.
func NewGitCommandResolver(executor GitExecutor, logger *zap.Logger) (*GitCommandResolver, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitCommandResolver{executor: executor, logger: logger}, nil
}

// ResolveRoot returns the repository top-level directory, or an empty string when the directory is outside any repository.
func (resolver *GitCommandResolver) ResolveRoot(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := resolver.run(executionContext, directory, gitRevParseSubcommandConstant, gitShowTopLevelFlagConstant)
	if executionError != nil {
		if IsNotRepositoryFailure(executionError) {
			resolver.logger.Debug(notRepositoryLogMessageConstant, zap.String(directoryLogFieldNameConstant, directory))
			return "", nil
		}
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ResolveBranch returns the checked-out branch, or NoBranch when the repository has no commits.
func (resolver *GitCommandResolver) ResolveBranch(executionContext context.Context, directory string) (Branch, error) {
	executionResult, executionError := resolver.run(executionContext, directory, gitBranchSubcommandConstant)
	if executionError != nil {
		return Branch{}, executionError
	}
	return ParseCurrentBranch(executionResult.StandardOutput), nil
}

// ResolveRemotes returns the configured remotes, or NoRemotes when none are configured.
func (resolver *GitCommandResolver) ResolveRemotes(executionContext context.Context, directory string) (Remotes, error) {
	executionResult, executionError := resolver.run(executionContext, directory, gitRemoteSubcommandConstant, gitVerboseFlagConstant)
	if executionError != nil {
		return Remotes{}, executionError
	}
	remotes, skippedLines := ParseRemotes(executionResult.StandardOutput)
	for _, skippedLine := range skippedLines {
		resolver.logger.Debug(malformedRemoteLineLogMessageConstant,
			zap.String(directoryLogFieldNameConstant, directory),
			zap.String(skippedLineLogFieldNameConstant, skippedLine),
		)
	}
	return remotes, nil
}

func (resolver *GitCommandResolver) run(executionContext context.Context, directory string, arguments ...string) (execshell.ExecutionResult, error) {
	return resolver.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: directory,
	})
}
