// Package log provides the package-level structured logger shared by the
// code paths that cannot return an error to a caller: the Windows limbo
// flush-on-close workers, the Windows listener's closing of its pooled
// instances, the release-build DisconnectNamedPipe failure handler, and
// Unix reclaim-on-close. Logging is their only observability surface.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
	level := logrus.WarnLevel
	if s := os.Getenv("INTERPROCESS_LOG_LEVEL"); s != "" {
		if parsed, err := logrus.ParseLevel(s); err == nil {
			level = parsed
		}
	}
	logger.SetLevel(level)
}

// Get returns the shared logger, preconfigured from the
// INTERPROCESS_LOG_LEVEL environment variable (default: warn).
func Get() *logrus.Entry {
	return logrus.NewEntry(logger)
}
