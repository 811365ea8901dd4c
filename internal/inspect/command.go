package inspect

import (
	"context"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitinfo/internal/dependencies"
	"github.com/temirov/gitinfo/internal/report"
	"github.com/temirov/gitinfo/internal/repoinfo"
	"github.com/temirov/gitinfo/internal/utils"
	pathutils "github.com/temirov/gitinfo/internal/utils/path"
)

const (
	commandUseNameConstant             = "inspect"
	commandUsageTemplateConstant       = commandUseNameConstant + " [directory...]"
	commandExampleTemplateConstant     = "gitinfo inspect ~/Development/project --output text"
	commandShortDescriptionConstant    = "Report repository root, branch and remotes for directories"
	commandLongDescriptionConstant     = "inspect determines whether each directory lies inside a Git repository and, when it does, reports the repository root, its name and parent directory name, the checked-out branch and the configured remotes. Directories default to the current directory."
	outputFlagNameConstant             = "output"
	outputFlagUsageConstant            = "Report format (json, yaml or text)."
	backendFlagNameConstant            = "backend"
	backendFlagUsageConstant           = "Inspection backend (git or go-git)."
	timeoutFlagNameConstant            = "timeout"
	timeoutFlagUsageConstant           = "Upper bound for inspecting each directory; zero disables the bound."
	defaultDirectoryConstant           = "."
	inspectionFailedLogMessageConstant = "Inspection failed"
	directoryLogFieldNameConstant      = "directory"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the inspect command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  repoinfo.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	HomeExpander                 *pathutils.HomeExpander
}

// Build constructs the inspect command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUsageTemplateConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		RunE:          builder.run,
		Args:          cobra.ArbitraryArgs,
		Example:       commandExampleTemplateConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	command.Flags().String(outputFlagNameConstant, "", outputFlagUsageConstant)
	command.Flags().String(backendFlagNameConstant, "", backendFlagUsageConstant)
	command.Flags().Duration(timeoutFlagNameConstant, 0, timeoutFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.resolveConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	resolvers, resolversError := dependencies.ResolveResolvers(configuration.Backend, builder.GitExecutor, logger, humanReadableLogging)
	if resolversError != nil {
		return resolversError
	}

	service, serviceError := repoinfo.NewServiceFromResolvers(resolvers, logger)
	if serviceError != nil {
		return serviceError
	}

	renderer, rendererError := report.NewRenderer(configuration.Output, report.WithColor(!color.NoColor))
	if rendererError != nil {
		return rendererError
	}

	parentContext := command.Context()
	if parentContext == nil {
		parentContext = context.Background()
	}

	directories := builder.resolveDirectories(arguments)
	inspections := make([]repoinfo.Inspection, 0, len(directories))
	for _, directory := range directories {
		inspection, inspectError := inspectDirectory(parentContext, service, directory, configuration.Timeout)
		if inspectError != nil {
			logger.Debug(inspectionFailedLogMessageConstant, zap.String(directoryLogFieldNameConstant, directory), zap.Error(inspectError))
			return inspectError
		}
		inspections = append(inspections, inspection)
	}

	return renderer.Render(utils.NewFlushingWriter(command.OutOrStdout()), inspections)
}

func inspectDirectory(parentContext context.Context, service *repoinfo.Service, directory string, timeout time.Duration) (repoinfo.Inspection, error) {
	executionContext := parentContext
	if timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(parentContext, timeout)
		defer cancel()
	}
	return service.Inspect(executionContext, directory)
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().Sanitize()
	}

	if command == nil {
		return configuration, nil
	}

	if command.Flags().Changed(outputFlagNameConstant) {
		outputValue, _ := command.Flags().GetString(outputFlagNameConstant)
		format, formatError := report.ParseFormat(outputValue)
		if formatError != nil {
			return CommandConfiguration{}, formatError
		}
		configuration.Output = format
	}

	if command.Flags().Changed(backendFlagNameConstant) {
		backendValue, _ := command.Flags().GetString(backendFlagNameConstant)
		backend, backendError := dependencies.ParseBackend(backendValue)
		if backendError != nil {
			return CommandConfiguration{}, backendError
		}
		configuration.Backend = backend
	}

	if command.Flags().Changed(timeoutFlagNameConstant) {
		timeoutValue, _ := command.Flags().GetDuration(timeoutFlagNameConstant)
		configuration.Timeout = timeoutValue
	}

	return configuration.Sanitize(), nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveDirectories(arguments []string) []string {
	homeExpander := builder.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	directories := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		directories = append(directories, homeExpander.Expand(trimmed))
	}
	if len(directories) == 0 {
		directories = append(directories, defaultDirectoryConstant)
	}
	return directories
}
