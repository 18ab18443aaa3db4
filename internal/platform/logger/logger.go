// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger for the given environment: debug level with text
// output in development, info level with JSON everywhere else.
func New(appName, env string) *logrus.Logger {
	return NewWithOutput(appName, env, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(appName, env string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return log
}
