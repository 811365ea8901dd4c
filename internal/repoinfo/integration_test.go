package repoinfo_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitinfo/internal/execshell"
	"github.com/temirov/gitinfo/internal/repoinfo"
)

const (
	integrationGitExecutableConstant       = "git"
	integrationCeilingVariableConstant     = "GIT_CEILING_DIRECTORIES"
	integrationRepositoryDirectoryConstant = "project"
	integrationBranchNameConstant          = "trunk"
	integrationCommitMessageConstant       = "initial commit"
	integrationTrackedFileNameConstant     = "README.md"
)

var integrationCommitEnvironment = []string{
	"GIT_AUTHOR_NAME=Test Author",
	"GIT_AUTHOR_EMAIL=author@example.com",
	"GIT_COMMITTER_NAME=Test Committer",
	"GIT_COMMITTER_EMAIL=committer@example.com",
}

func requireGitExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(integrationGitExecutableConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}

func runIntegrationGit(testInstance *testing.T, directory string, arguments ...string) {
	testInstance.Helper()
	command := exec.Command(integrationGitExecutableConstant, append([]string{"-c", "commit.gpgsign=false"}, arguments...)...)
	command.Dir = directory
	command.Env = append(os.Environ(), integrationCommitEnvironment...)
	output, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(output))
}

func newIntegrationService(testInstance *testing.T) *repoinfo.Service {
	testInstance.Helper()
	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	resolver, resolverError := repoinfo.NewGitCommandResolver(shellExecutor, zap.NewNop())
	require.NoError(testInstance, resolverError)
	service, serviceError := repoinfo.NewServiceFromResolvers(resolver, zap.NewNop())
	require.NoError(testInstance, serviceError)
	return service
}

func createIntegrationWorkspace(testInstance *testing.T) string {
	testInstance.Helper()
	workspace, evaluationError := filepath.EvalSymlinks(testInstance.TempDir())
	require.NoError(testInstance, evaluationError)
	testInstance.Setenv(integrationCeilingVariableConstant, workspace)
	return workspace
}

func initializeIntegrationRepository(testInstance *testing.T, workspace string) string {
	testInstance.Helper()
	repositoryRoot := filepath.Join(workspace, integrationRepositoryDirectoryConstant)
	require.NoError(testInstance, os.MkdirAll(repositoryRoot, 0o755))
	runIntegrationGit(testInstance, repositoryRoot, "init", "--quiet")
	runIntegrationGit(testInstance, repositoryRoot, "symbolic-ref", "HEAD", "refs/heads/"+integrationBranchNameConstant)
	return repositoryRoot
}

func TestServiceInspectsRealRepositories(testInstance *testing.T) {
	requireGitExecutable(testInstance)

	testInstance.Run("outside_repository", func(testInstance *testing.T) {
		workspace := createIntegrationWorkspace(testInstance)
		service := newIntegrationService(testInstance)

		inspection, inspectError := service.Inspect(context.Background(), workspace)
		require.NoError(testInstance, inspectError)
		require.Equal(testInstance, repoinfo.InspectionStatusNotRepository, inspection.Status)
	})

	testInstance.Run("fresh_repository", func(testInstance *testing.T) {
		workspace := createIntegrationWorkspace(testInstance)
		repositoryRoot := initializeIntegrationRepository(testInstance, workspace)
		service := newIntegrationService(testInstance)

		inspection, inspectError := service.Inspect(context.Background(), repositoryRoot)
		require.NoError(testInstance, inspectError)

		repository, isRepository := inspection.Repository()
		require.True(testInstance, isRepository)
		require.Equal(testInstance, repositoryRoot, repository.Root)
		require.Equal(testInstance, integrationRepositoryDirectoryConstant, repository.Name)
		require.Equal(testInstance, filepath.Base(workspace), repository.ParentDirectoryName)
		require.True(testInstance, repository.Branch.IsNone())
		require.True(testInstance, repository.Remotes.IsNone())
	})

	testInstance.Run("committed_repository_with_remotes", func(testInstance *testing.T) {
		workspace := createIntegrationWorkspace(testInstance)
		repositoryRoot := initializeIntegrationRepository(testInstance, workspace)

		require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryRoot, integrationTrackedFileNameConstant), []byte("# project\n"), 0o644))
		runIntegrationGit(testInstance, repositoryRoot, "add", integrationTrackedFileNameConstant)
		runIntegrationGit(testInstance, repositoryRoot, "commit", "--quiet", "-m", integrationCommitMessageConstant)

		expectedRemotes := map[string]string{
			"origin": "https://example.com/a.git",
			"test2":  "   this is a test  ",
			"test3":  `another test \n  \t    \n  \t  `,
		}
		for remoteName, remoteURL := range expectedRemotes {
			runIntegrationGit(testInstance, repositoryRoot, "remote", "add", remoteName, remoteURL)
		}

		nestedDirectory := filepath.Join(repositoryRoot, "subfolder", "subsubfolder")
		require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

		service := newIntegrationService(testInstance)

		var inspected []repoinfo.RepoInfo
		for _, directory := range []string{repositoryRoot, filepath.Dir(nestedDirectory), nestedDirectory} {
			inspection, inspectError := service.Inspect(context.Background(), directory)
			require.NoError(testInstance, inspectError)
			repository, isRepository := inspection.Repository()
			require.True(testInstance, isRepository, directory)
			inspected = append(inspected, repository)
		}

		branchName, hasBranch := inspected[0].Branch.Name()
		require.True(testInstance, hasBranch)
		require.Equal(testInstance, integrationBranchNameConstant, branchName)
		require.Equal(testInstance, repositoryRoot, inspected[0].Root)
		require.Equal(testInstance, expectedRemotes, inspected[0].Remotes.Endpoints())

		for _, repository := range inspected[1:] {
			require.Equal(testInstance, inspected[0].Root, repository.Root)
			require.Equal(testInstance, inspected[0].Name, repository.Name)
			require.Equal(testInstance, inspected[0].ParentDirectoryName, repository.ParentDirectoryName)
			require.Equal(testInstance, inspected[0].Branch, repository.Branch)
			require.Equal(testInstance, inspected[0].Remotes.Endpoints(), repository.Remotes.Endpoints())
		}
	})
}
