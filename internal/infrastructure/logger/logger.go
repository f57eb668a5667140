package logger

import (
	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logger and returns it. The same
// instance backs the package-level logrus helpers used by the lenient
// row normalizer, so per-row warnings follow the configured level and
// format too. Format is "text" or "json".
func Setup(level, format string) *logrus.Logger {
	log := logrus.StandardLogger()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	return log
}
