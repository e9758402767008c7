// Package log provides structured logging with filesystem-based persistence.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is an alias so callers do not need to import logrus directly.
type Fields = logrus.Fields

// Setup initializes the logging subsystem from the global configuration.
// If logging is disabled, every emission is discarded.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logrus.SetOutput(io.Discard)
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// With returns an entry carrying the given structured fields.
func With(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Error(args ...any)                 { logrus.Error(args...) }
func Errorf(format string, args ...any) { logrus.Errorf(format, args...) }
func Warn(args ...any)                  { logrus.Warn(args...) }
func Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func Info(args ...any)                  { logrus.Info(args...) }
func Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func Debug(args ...any)                 { logrus.Debug(args...) }
func Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
