package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const (
	environmentAssignmentTemplateConstant = "%s=%s"
)

// OSCommandRunner starts git as a child process of gitinfo.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run starts the command in Details.WorkingDirectory and captures both output streams.
// A non-zero exit, such as git's 128 outside a repository, is a result rather than an error;
// the error return covers processes that never ran and canceled or expired contexts.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	process := exec.CommandContext(executionContext, string(command.Name), append([]string{}, command.Details.Arguments...)...)
	process.Dir = command.Details.WorkingDirectory
	process.Env = mergedEnvironment(command.Details.EnvironmentVariables)
	if len(command.Details.StandardInput) > 0 {
		process.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	var standardOutput, standardError bytes.Buffer
	process.Stdout = &standardOutput
	process.Stderr = &standardError

	result := func(exitCode int) ExecutionResult {
		return ExecutionResult{
			StandardOutput: standardOutput.String(),
			StandardError:  standardError.String(),
			ExitCode:       exitCode,
		}
	}

	runError := process.Run()
	if runError == nil {
		return result(0), nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		return result(exitError.ExitCode()), nil
	}
	return ExecutionResult{}, runError
}

// mergedEnvironment layers overrides onto the current environment; nil keeps the inherited environment.
func mergedEnvironment(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}
	environment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range overrides {
		environment = append(environment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentValue))
	}
	return environment
}
