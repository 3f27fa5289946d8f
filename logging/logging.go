// Package logging provides real-time console output for task runs.
// Log records are a side channel for monitoring; they are not part of the
// functional contract of the task or cli packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger provides structured logging to stdout.
type Logger struct {
	mu        sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
	traceID   string
}

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// New creates a new Logger.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
		traceID:   l.traceID,
	}
}

// WithTraceID returns a new logger with the given trace ID.
// The task runner sets this to the run ID of the task being executed.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: l.component,
		traceID:   traceID,
	}
}

// TraceID returns the trace ID, if set.
func (l *Logger) TraceID() string {
	return l.traceID
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a log entry in traditional format: LEVEL TIMESTAMP [component] message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var fieldStr string
	if len(fields) > 0 && fields[0] != nil {
		fieldStr = formatFields(fields[0])
	}

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Event-derived logging methods ---
// Called by the task runner and command dispatcher for real-time output.

// TaskStart logs the start of a task run.
func (l *Logger) TaskStart(task string) {
	l.Info("task_start", map[string]interface{}{
		"task": task,
	})
}

// TaskComplete logs the successful completion of a task run.
func (l *Logger) TaskComplete(task string, duration time.Duration) {
	l.Info("task_complete", map[string]interface{}{
		"task":     task,
		"duration": duration.String(),
	})
}

// TaskFailed logs a task run whose error was captured on the result.
func (l *Logger) TaskFailed(task string, err error) {
	fields := map[string]interface{}{
		"task": task,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	l.Error("task_failed", fields)
}

// CommandDispatch logs dispatch of a parsed command line to a task.
func (l *Logger) CommandDispatch(command, task string) {
	l.Debug("command_dispatch", map[string]interface{}{
		"command": command,
		"task":    task,
	})
}

// MergeApplied logs a completed merge into a task.
func (l *Logger) MergeApplied(task string, applied int) {
	l.Debug("merge_applied", map[string]interface{}{
		"task":    task,
		"applied": applied,
	})
}
