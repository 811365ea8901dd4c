package dependencies

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitinfo/internal/execshell"
	"github.com/temirov/gitinfo/internal/gogit"
	"github.com/temirov/gitinfo/internal/repoinfo"
	"github.com/temirov/gitinfo/internal/ui"
)

const (
	unsupportedBackendTemplateConstant = "%w: %s"
	goGitBackendAliasConstant          = "gogit"
)

// Backend selects the implementation answering root, branch and remote queries.
type Backend string

// Supported backends.
const (
	BackendGit   Backend = Backend("git")
	BackendGoGit Backend = Backend("go-git")
)

// ErrUnsupportedBackend indicates a backend name outside the supported set.
var ErrUnsupportedBackend = errors.New("unsupported inspection backend")

// ParseBackend normalizes a textual backend name. An empty value selects the git executable.
func ParseBackend(value string) (Backend, error) {
	normalized := Backend(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "", BackendGit:
		return BackendGit, nil
	case BackendGoGit, Backend(goGitBackendAliasConstant):
		return BackendGoGit, nil
	default:
		return "", fmt.Errorf(unsupportedBackendTemplateConstant, ErrUnsupportedBackend, value)
	}
}

// UnmarshalText decodes configuration values into a Backend.
func (backend *Backend) UnmarshalText(text []byte) error {
	parsed, parseError := ParseBackend(string(text))
	if parseError != nil {
		return parseError
	}
	*backend = parsed
	return nil
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging attaches a console observer describing each git invocation.
func ResolveGitExecutor(existing repoinfo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (repoinfo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var executorOptions []execshell.ShellExecutorOption
	if humanReadableLogging {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), executorOptions...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveResolvers builds the resolver set for the selected backend.
// The git backend runs commands through executor, resolving a default executor when none is provided.
func ResolveResolvers(backend Backend, executor repoinfo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (repoinfo.ResolverSet, error) {
	switch backend {
	case BackendGoGit:
		return gogit.NewResolver(logger), nil
	case BackendGit, "":
		gitExecutor, executorError := ResolveGitExecutor(executor, logger, humanReadableLogging)
		if executorError != nil {
			return nil, executorError
		}
		gitResolver, resolverError := repoinfo.NewGitCommandResolver(gitExecutor, logger)
		if resolverError != nil {
			return nil, resolverError
		}
		return gitResolver, nil
	default:
		return nil, fmt.Errorf(unsupportedBackendTemplateConstant, ErrUnsupportedBackend, backend)
	}
}
