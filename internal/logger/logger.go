package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"
)

const (
	appDir       = ".uno"
	logFileName  = "debug.log"
	maxLogSize   = 10 * 1024 * 1024
	logFileFlags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
)

var (
	mu       sync.Mutex
	debugLog *os.File
	logPath  string
)

// Init initializes the debug logger under ~/.uno
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitDir(filepath.Join(homeDir, appDir))
}

// InitDir initializes the debug logger in the given directory
func InitDir(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}

	path := filepath.Join(logDir, logFileName)
	f, err := os.OpenFile(path, logFileFlags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("%s.%d", logFileName, time.Now().Unix()))
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, logFileFlags, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	debugLog = f
	logPath = path

	log.SetOutput(debugLog)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	log.Printf("[INFO] Logger initialized, log file: %s", logPath)
	return nil
}

// Close closes the debug log file and restores stderr output
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if debugLog != nil {
		log.SetOutput(os.Stderr)
		_ = debugLog.Close()
		debugLog = nil
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	_ = log.Output(2, fmt.Sprintf("[INFO] "+format, args...))
}

// LogError logs an error message
func LogError(format string, args ...any) {
	_ = log.Output(2, fmt.Sprintf("[ERROR] "+format, args...))
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	_ = log.Output(2, fmt.Sprintf("[PANIC] %v\n%s", r, debug.Stack()))
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
