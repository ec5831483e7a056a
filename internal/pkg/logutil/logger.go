package logutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"replymate/internal/pkg/constants"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configuration string to a LogLevel, defaulting to INFO.
func ParseLevel(level string) LogLevel {
	switch level {
	case constants.LogLevelDebug:
		return DEBUG
	case constants.LogLevelInfo:
		return INFO
	case constants.LogLevelWarn:
		return WARN
	case constants.LogLevelError:
		return ERROR
	case constants.LogLevelFatal:
		return FATAL
	default:
		return INFO
	}
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       LogLevel
	Format      string // "json" or "text"
	ServiceName string
}

// DefaultLogConfig provides sensible logging defaults
var DefaultLogConfig = LogConfig{
	Level:       INFO,
	Format:      constants.LogFormatText,
	ServiceName: constants.ServiceName,
}

// Logger provides structured logging functionality
type Logger struct {
	config LogConfig
	logger *log.Logger
}

// NewLogger creates a new logger with the specified configuration
func NewLogger(config LogConfig) *Logger {
	return NewLoggerWithOutput(config, os.Stdout)
}

// NewLoggerWithOutput creates a logger writing to the given sink
func NewLoggerWithOutput(config LogConfig, out io.Writer) *Logger {
	return &Logger{
		config: config,
		logger: log.New(out, "", 0),
	}
}

// NewDefaultLogger creates a logger with default configuration
func NewDefaultLogger() *Logger {
	return NewLogger(DefaultLogConfig)
}

// Fields represents structured log fields
type Fields map[string]interface{}

type logMessage struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.config.Level
}

func (l *Logger) formatMessage(level LogLevel, msg string, fields Fields) string {
	timestamp := time.Now().Format(time.RFC3339)

	if l.config.Format == constants.LogFormatJSON {
		encoded, err := json.Marshal(logMessage{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   l.config.ServiceName,
			Message:   msg,
			Fields:    fields,
		})
		if err != nil {
			return fmt.Sprintf(`{"timestamp":%q,"level":%q,"service":%q,"message":%q}`,
				timestamp, level.String(), l.config.ServiceName, msg)
		}
		return string(encoded)
	}

	result := fmt.Sprintf("%s [%s] %s: %s", timestamp, level.String(), l.config.ServiceName, msg)
	if len(fields) > 0 {
		result += " |"
		for k, v := range fields {
			result += fmt.Sprintf(" %s=%v", k, v)
		}
	}
	return result
}

func (l *Logger) log(level LogLevel, msg string, fields Fields) {
	if !l.shouldLog(level) {
		return
	}

	l.logger.Println(l.formatMessage(level, msg, fields))

	if level == FATAL {
		os.Exit(1)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(DEBUG, msg, firstOf(fields))
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(INFO, msg, firstOf(fields))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(WARN, msg, firstOf(fields))
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Fields) {
	l.log(ERROR, msg, firstOf(fields))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, fields ...Fields) {
	l.log(FATAL, msg, firstOf(fields))
}

func firstOf(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// WithFields returns a logger with pre-set fields
func (l *Logger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{
		logger: l,
		fields: fields,
	}
}

// FieldLogger is a logger with pre-set fields
type FieldLogger struct {
	logger *Logger
	fields Fields
}

func (fl *FieldLogger) mergeFields(newFields Fields) Fields {
	merged := make(Fields, len(fl.fields)+len(newFields))
	for k, v := range fl.fields {
		merged[k] = v
	}
	for k, v := range newFields {
		merged[k] = v
	}
	return merged
}

// Debug logs a debug message with pre-set fields
func (fl *FieldLogger) Debug(msg string, fields ...Fields) {
	fl.logger.log(DEBUG, msg, fl.mergeFields(firstOf(fields)))
}

// Info logs an info message with pre-set fields
func (fl *FieldLogger) Info(msg string, fields ...Fields) {
	fl.logger.log(INFO, msg, fl.mergeFields(firstOf(fields)))
}

// Warn logs a warning message with pre-set fields
func (fl *FieldLogger) Warn(msg string, fields ...Fields) {
	fl.logger.log(WARN, msg, fl.mergeFields(firstOf(fields)))
}

// Error logs an error message with pre-set fields
func (fl *FieldLogger) Error(msg string, fields ...Fields) {
	fl.logger.log(ERROR, msg, fl.mergeFields(firstOf(fields)))
}
