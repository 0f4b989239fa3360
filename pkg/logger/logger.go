package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Fields is an alias so callers need not import logrus.
type Fields = log.Fields

var (
	std     = newStd()
	logFile *os.File
)

func newStd() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true, TimestampFormat: "2006-01-02 15:04:05"})
	return l
}

// Init sets the level and, when filename is not empty, tees output into that file.
func Init(level string, filename string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	std.SetLevel(lvl)

	if filename == "" {
		return nil
	}
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrapf(err, "failed to open log file '%s'", filename)
	}
	Close()
	logFile = f
	std.SetOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

// Close releases the log file opened by Init and restores stdout output.
func Close() {
	if logFile != nil {
		std.SetOutput(os.Stdout)
		logFile.Close()
		logFile = nil
	}
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func WithFields(fields Fields) *log.Entry {
	return std.WithFields(fields)
}

func Info(args ...interface{}) {
	std.Info(args...)
}

func Infof(format string, v ...interface{}) {
	std.Infof(format, v...)
}

func Debugf(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	std.Errorf(format, v...)
}
