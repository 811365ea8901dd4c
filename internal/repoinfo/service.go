package repoinfo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	inspectionStartedLogMessageConstant   = "Inspecting directory"
	inspectionCompletedLogMessageConstant = "Inspected directory"
	discardedFailureLogMessageConstant    = "Discarding concurrent resolver failure"
	rootLogFieldNameConstant              = "root"
	statusLogFieldNameConstant            = "status"
)

var (
	// ErrDirectoryRequired indicates an inspection was requested without a directory.
	ErrDirectoryRequired = errors.New("directory must be provided")
	// ErrRootResolverNotConfigured indicates the service was constructed without a root resolver.
	ErrRootResolverNotConfigured = errors.New("root resolver not configured")
	// ErrBranchResolverNotConfigured indicates the service was constructed without a branch resolver.
	ErrBranchResolverNotConfigured = errors.New("branch resolver not configured")
	// ErrRemoteResolverNotConfigured indicates the service was constructed without a remote resolver.
	ErrRemoteResolverNotConfigured = errors.New("remote resolver not configured")
)

// ServiceDependencies enumerates collaborators required by the inspection service.
type ServiceDependencies struct {
	RootResolver   RootResolver
	BranchResolver BranchResolver
	RemoteResolver RemoteResolver
	Logger         *zap.Logger
}

// Service aggregates root, branch and remote lookups into a single inspection.
type Service struct {
	rootResolver   RootResolver
	branchResolver BranchResolver
	remoteResolver RemoteResolver
	logger         *zap.Logger
}

// NewService validates dependencies and constructs an inspection service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RootResolver == nil {
		return nil, ErrRootResolverNotConfigured
	}
	if dependencies.BranchResolver == nil {
		return nil, ErrBranchResolverNotConfigured
	}
	if dependencies.RemoteResolver == nil {
		return nil, ErrRemoteResolverNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		rootResolver:   dependencies.RootResolver,
		branchResolver: dependencies.BranchResolver,
		remoteResolver: dependencies.RemoteResolver,
		logger:         logger,
	}, nil
}

// ResolverSet bundles one implementation of each resolver, as provided by a single backend.
type ResolverSet interface {
	RootResolver
	BranchResolver
	RemoteResolver
}

// NewServiceFromResolvers constructs a service whose three resolvers come from the same backend.
func NewServiceFromResolvers(resolvers ResolverSet, logger *zap.Logger) (*Service, error) {
	if resolvers == nil {
		return nil, ErrRootResolverNotConfigured
	}
	return NewService(ServiceDependencies{
		RootResolver:   resolvers,
		BranchResolver: resolvers,
		RemoteResolver: resolvers,
		Logger:         logger,
	})
}

// Inspect reports whether the directory is inside a repository and, if so, its root, branch and remotes.
// Branch and remote lookups run concurrently once the root is known; both are always awaited.
// When either lookup fails the first failure is returned unmodified and no partial result is produced.
func (service *Service) Inspect(executionContext context.Context, directory string) (Inspection, error) {
	if len(strings.TrimSpace(directory)) == 0 {
		return Inspection{}, ErrDirectoryRequired
	}

	service.logger.Debug(inspectionStartedLogMessageConstant, zap.String(directoryLogFieldNameConstant, directory))

	root, rootError := service.rootResolver.ResolveRoot(executionContext, directory)
	if rootError != nil {
		return Inspection{}, rootError
	}
	if len(root) == 0 {
		inspection := AbsentInspection(directory)
		service.logInspection(inspection, root)
		return inspection, nil
	}

	var (
		branch      Branch
		remotes     Remotes
		failures    lookupFailures
		lookupGroup errgroup.Group
	)

	lookupGroup.Go(func() error {
		var branchError error
		branch, branchError = service.branchResolver.ResolveBranch(executionContext, directory)
		return failures.record(branchError)
	})
	lookupGroup.Go(func() error {
		var remotesError error
		remotes, remotesError = service.remoteResolver.ResolveRemotes(executionContext, directory)
		return failures.record(remotesError)
	})

	if lookupGroup.Wait() != nil {
		reportedError, discardedErrors := failures.split()
		for _, discardedError := range discardedErrors {
			service.logger.Debug(discardedFailureLogMessageConstant,
				zap.String(directoryLogFieldNameConstant, directory),
				zap.Error(discardedError),
			)
		}
		return Inspection{}, reportedError
	}

	inspection := RepositoryInspection(directory, NewRepoInfo(root, branch, remotes))
	service.logInspection(inspection, root)
	return inspection, nil
}

// lookupFailures keeps resolver failures in the order they completed.
type lookupFailures struct {
	mutex    sync.Mutex
	recorded []error
}

func (failures *lookupFailures) record(failure error) error {
	if failure == nil {
		return nil
	}
	failures.mutex.Lock()
	defer failures.mutex.Unlock()
	failures.recorded = append(failures.recorded, failure)
	return failure
}

func (failures *lookupFailures) split() (error, []error) {
	failures.mutex.Lock()
	defer failures.mutex.Unlock()
	if len(failures.recorded) == 0 {
		return nil, nil
	}
	return failures.recorded[0], failures.recorded[1:]
}

func (service *Service) logInspection(inspection Inspection, root string) {
	service.logger.Debug(inspectionCompletedLogMessageConstant,
		zap.String(directoryLogFieldNameConstant, inspection.Directory),
		zap.String(statusLogFieldNameConstant, string(inspection.Status)),
		zap.String(rootLogFieldNameConstant, root),
	)
}
