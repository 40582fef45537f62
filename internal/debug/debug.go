// Package debug provides opt-in diagnostic logging, enabled with TK_DEBUG.
// Output goes to a size-rotated log file rather than stderr so it never
// pollutes command output consumed by scripts.
package debug

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once   sync.Once
	logger *log.Logger
)

// Enabled reports whether debug logging is on.
func Enabled() bool {
	v := os.Getenv("TK_DEBUG")
	return v != "" && v != "0" && v != "false"
}

// Logf writes a line to the debug log when TK_DEBUG is set. The log lives
// under TK_DEBUG_LOG_DIR, or ~/.tickets by default, rotated at 10 MB.
func Logf(format string, args ...any) {
	if !Enabled() {
		return
	}
	once.Do(func() {
		dir := os.Getenv("TK_DEBUG_LOG_DIR")
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".tickets")
			} else {
				dir = "."
			}
		}
		_ = os.MkdirAll(dir, 0o755)
		logger = log.New(&lumberjack.Logger{
			Filename:   filepath.Join(dir, "debug.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}, "", log.LstdFlags|log.Lmicroseconds)
	})
	logger.Printf(format, args...)
}
