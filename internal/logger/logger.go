// Package logger is the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// OutputFormat selects the log line encoding.
type OutputFormat string

const (
	// FormatText renders key=value lines.
	FormatText OutputFormat = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON OutputFormat = "json"
)

// Default rotation settings for the log file.
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
)

var (
	// testOutput is used to capture log output during tests
	testOutput   io.Writer
	testOutputMu sync.Mutex

	fileOutput io.WriteCloser
)

// Fields is a type alias for log fields to make the API cleaner
type Fields = logrus.Fields

var logger *logrus.Logger

// SetTestOutput sets the output writer for testing purposes
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput resets the test output to nil
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	if fileOutput != nil {
		return fileOutput
	}
	return os.Stderr
}

// InitLogger initializes the global logger. Unknown levels fall back to info.
func InitLogger(logLevel string, format OutputFormat) {
	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}

	logger = logrus.New()
	logger.SetOutput(getOutput())
	logger.SetLevel(level)
	SetOutputFormat(format)
}

// SetOutputFormat switches the formatter of the current logger.
func SetOutputFormat(format OutputFormat) {
	lg := GetLogger()
	if format == FormatJSON {
		lg.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	lg.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
}

// SetLogFile sends log output to a size-rotated file. An empty path restores stderr.
func SetLogFile(path string, maxSizeMB, maxBackups int) {
	if fileOutput != nil {
		_ = fileOutput.Close()
		fileOutput = nil
	}
	if path != "" {
		fileOutput = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			Compress:   true,
			LocalTime:  true,
		}
	}
	GetLogger().SetOutput(getOutput())
}

// Close releases the log file, if any.
func Close() {
	if fileOutput != nil {
		_ = fileOutput.Close()
		fileOutput = nil
	}
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	if logger == nil {
		// Initialize with default settings if not already initialized
		InitLogger("info", FormatText)
	}
	return logger
}

// WithComponent returns an entry tagged with the component name.
func WithComponent(name string) *logrus.Entry {
	return GetLogger().WithField("component", name)
}

// Info logs an info message.
func Info(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Info(msg)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

// Debug logs a debug message (only shown when debug level is enabled).
func Debug(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Debug(msg)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Warn(msg)
}

// Error logs an error message.
func Error(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Error(msg)
}

// Success logs a success message as info with success indicator.
func Success(msg string, fields ...Fields) {
	merged := mergeFields(fields...)
	merged["status"] = "success"
	GetLogger().WithFields(merged).Info(msg)
}

// mergeFields merges multiple field maps into one; later maps win.
func mergeFields(fields ...Fields) Fields {
	result := Fields{}
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}
