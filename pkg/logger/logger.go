package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger is usable before InitLogger is called; InitLogger only adjusts
// the level and formatter.
var Logger = logrus.New()

// InitLogger configures the package logger with the given level
// (debug, info, warn, error, fatal).
func InitLogger(level string) error {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level '%s'", level)
	}
	Logger.SetLevel(parsedLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

// IsDebug reports whether debug logging is enabled.
func IsDebug() bool {
	return Logger.IsLevelEnabled(logrus.DebugLevel)
}
