// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses ConfigurationLoader, which layers embedded defaults, configuration
// files, and environment variables through Viper, LoggerFactory, which builds
// zap loggers with an optional rotating log file, and FlushingWriter.
package utils
