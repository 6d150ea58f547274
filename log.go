package addrsplit

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// Logger returns the logger used by this package.
func Logger() *logrus.Logger {
	return logger
}

// SetLogger replaces the logger used by this package.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}

// Silence disables the logger output.
func Silence() {
	logger.Out = io.Discard
}

// PrefixedLog returns the package logger with prefix
func PrefixedLog(prefix string) *logrus.Entry {
	return logger.WithField("prefix", prefix)
}
