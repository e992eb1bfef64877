// pkg/logging/logging.go - leveled logging for secupdate.
//
// Console output goes to stdout in a plain timestamped format; when a log
// directory is configured, each run also writes a session directory
// (YYYY-MM-DD-HHMMss) containing secupdate.log and events.jsonl for
// external tooling.

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/macadmins/secupdate/pkg/config"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelSuccess:
		return "SUCCESS"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configuration string to a LogLevel, defaulting to INFO.
func ParseLevel(s string) LogLevel {
	switch s {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "SUCCESS":
		return LevelSuccess
	case "INFO":
		return LevelInfo
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// LogEntry is the structured record written to events.jsonl.
type LogEntry struct {
	Time       int64                  `json:"time"`
	Timestamp  string                 `json:"timestamp"`
	Level      string                 `json:"level"`
	Message    string                 `json:"message"`
	PID        int64                  `json:"pid"`
	Hostname   string                 `json:"hostname"`
	SessionID  string                 `json:"session_id"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Logger writes leveled messages to the console and, optionally, to a
// per-session log directory.
type Logger struct {
	mu        sync.Mutex
	console   *log.Logger
	logLevel  LogLevel
	logFile   *os.File
	jsonFile  *os.File
	logDir    string
	hostname  string
	sessionID string
}

var (
	instance *Logger
	once     sync.Once
)

// Init initializes the singleton Logger based on the provided configuration.
// It must be called before any logging functions are used.
func Init(cfg *config.Configuration) error {
	var initErr error
	once.Do(func() {
		instance, initErr = newLogger(cfg)
	})
	return initErr
}

func newLogger(cfg *config.Configuration) (*Logger, error) {
	sessionStart := time.Now()

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	l := &Logger{
		console:   log.New(os.Stdout, "", 0),
		logLevel:  ParseLevel(cfg.LogLevel),
		hostname:  hostname,
		sessionID: fmt.Sprintf("secupdate-%d", sessionStart.Unix()),
	}
	if cfg.Debug {
		l.logLevel = LevelDebug
	}

	if cfg.LogDir != "" {
		if err := l.openSessionFiles(cfg.LogDir, sessionStart); err != nil {
			// File logging is best-effort; a read-only filesystem or missing
			// permissions must not stop an update run.
			fmt.Fprintf(os.Stderr, "log directory unavailable, console only: %v\n", err)
		}
	}

	return l, nil
}

func (l *Logger) openSessionFiles(baseDir string, sessionStart time.Time) error {
	logDir := filepath.Join(baseDir, sessionStart.Format("2006-01-02-150405"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("creating session log directory %s: %w", logDir, err)
	}
	l.logDir = logDir

	var err error
	l.logFile, err = os.OpenFile(filepath.Join(logDir, "secupdate.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening session log file: %w", err)
	}

	l.jsonFile, err = os.OpenFile(filepath.Join(logDir, "events.jsonl"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening events file: %w", err)
	}

	l.console = log.New(io.MultiWriter(os.Stdout, l.logFile), "", 0)
	return nil
}

// SessionDir returns the current session log directory, or "" when file
// logging is disabled.
func SessionDir() string {
	if instance == nil {
		return ""
	}
	return instance.logDir
}

// Close closes any open log files.
func Close() {
	if instance == nil {
		return
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.logFile != nil {
		instance.logFile.Close()
		instance.logFile = nil
		instance.console = log.New(os.Stdout, "", 0)
	}
	if instance.jsonFile != nil {
		instance.jsonFile.Close()
		instance.jsonFile = nil
	}
}

func (l *Logger) logMessage(level LogLevel, message string, keyValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level > l.logLevel {
		return
	}

	ts := time.Now()
	line := fmt.Sprintf("[%s] %-7s %s", ts.Format("2006-01-02 15:04:05"), level.String(), message)
	for i := 0; i+1 < len(keyValues); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyValues[i], keyValues[i+1])
	}
	l.console.Println(line)

	if l.jsonFile != nil {
		properties := make(map[string]interface{})
		for i := 0; i+1 < len(keyValues); i += 2 {
			properties[fmt.Sprintf("%v", keyValues[i])] = keyValues[i+1]
		}
		entry := LogEntry{
			Time:       ts.Unix(),
			Timestamp:  ts.Format(time.RFC3339),
			Level:      level.String(),
			Message:    message,
			PID:        int64(os.Getpid()),
			Hostname:   l.hostname,
			SessionID:  l.sessionID,
			Properties: properties,
		}
		if data, err := json.Marshal(entry); err == nil {
			l.jsonFile.Write(append(data, '\n'))
		}
	}
}

// Info logs informational messages.
func Info(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: INFO %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelInfo, message, keyValues...)
}

// Success logs successful completion of an operation.
func Success(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: SUCCESS %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelSuccess, message, keyValues...)
}

// Debug logs debug messages.
func Debug(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: DEBUG %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelDebug, message, keyValues...)
}

// Warn logs warning messages.
func Warn(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: WARN %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelWarn, message, keyValues...)
}

// Error logs error messages.
func Error(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Printf("LOGGING NOT INITIALIZED: ERROR %s %v\n", message, keyValues)
		return
	}
	instance.logMessage(LevelError, message, keyValues...)
}
