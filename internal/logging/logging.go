// Package logging is the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once   sync.Once
	logger *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "forgelight",
		})
		logger.SetLevel(log.InfoLevel)
	})
	return logger
}

// SetLevel changes the minimum level by name (debug, info, warn, error).
// Unknown names leave the level untouched and return the parse error.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	get().SetLevel(lvl)
	return nil
}

// SetOutput redirects log output. Intended for tests.
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

func Debug(msg string, keyvals ...interface{}) {
	get().Helper()
	get().Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	get().Helper()
	get().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	get().Helper()
	get().Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	get().Helper()
	get().Error(msg, keyvals...)
}

func Fatal(msg string, keyvals ...interface{}) {
	get().Helper()
	get().Fatal(msg, keyvals...)
}
