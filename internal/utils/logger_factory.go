package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	defaultLogFileMaxSizeMegabytes       = 10
	defaultLogFileMaxBackups             = 3
	defaultLogFileMaxAgeDays             = 28
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LogFileConfiguration describes an optional rotating log file receiving structured entries.
type LogFileConfiguration struct {
	Path             string
	MaxSizeMegabytes int
	MaxBackups       int
	MaxAgeDays       int
	Compress         bool
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger writing to standard error with the requested level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithFile(requestedLogLevel, requestedLogFormat, LogFileConfiguration{})
}

// CreateLoggerWithFile produces a logger that additionally tees JSON entries into a rotating file when a path is configured.
func (factory *LoggerFactory) CreateLoggerWithFile(requestedLogLevel LogLevel, requestedLogFormat LogFormat, fileConfiguration LogFileConfiguration) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(strings.ToLower(strings.TrimSpace(string(requestedLogLevel))))]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoding, formatExists := logFormatEncodingMapping[LogFormat(strings.ToLower(strings.TrimSpace(string(requestedLogFormat))))]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	atomicLevel := zap.NewAtomicLevelAt(zapLogLevel)
	configuration := zap.NewProductionConfig()
	configuration.Level = atomicLevel
	configuration.Encoding = encoding

	var buildOptions []zap.Option
	if fileCore := newRotatingFileCore(fileConfiguration, atomicLevel); fileCore != nil {
		buildOptions = append(buildOptions, zap.WrapCore(func(standardErrorCore zapcore.Core) zapcore.Core {
			return zapcore.NewTee(standardErrorCore, fileCore)
		}))
	}

	logger, buildError := configuration.Build(buildOptions...)
	if buildError != nil {
		return nil, buildError
	}

	return logger, nil
}

func newRotatingFileCore(fileConfiguration LogFileConfiguration, level zap.AtomicLevel) zapcore.Core {
	trimmedPath := strings.TrimSpace(fileConfiguration.Path)
	if len(trimmedPath) == 0 {
		return nil
	}

	rotatingWriter := &lumberjack.Logger{
		Filename:   trimmedPath,
		MaxSize:    positiveOrDefault(fileConfiguration.MaxSizeMegabytes, defaultLogFileMaxSizeMegabytes),
		MaxBackups: positiveOrDefault(fileConfiguration.MaxBackups, defaultLogFileMaxBackups),
		MaxAge:     positiveOrDefault(fileConfiguration.MaxAgeDays, defaultLogFileMaxAgeDays),
		Compress:   fileConfiguration.Compress,
	}

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(rotatingWriter),
		level,
	)
}

func positiveOrDefault(value int, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
