// Package logger wraps logrus with the JSON layout used by every component.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. Unknown levels fall back to info.
func Init(level string) {
	InitWithOutput(level, os.Stdout)
}

// InitWithOutput is Init with an explicit writer. The MCP server logs to
// stderr because stdout carries the protocol.
func InitWithOutput(level string, out io.Writer) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logrus.SetOutput(out)
	logrus.SetLevel(ParseLevel(level))
}

// ParseLevel converts a config level name into a logrus level.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// New returns an entry tagged with the component name.
func New(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
