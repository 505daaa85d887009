package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger from LOG_LEVEL / LOG_FORMAT style settings.
// format is "json" or "text".
func New(level, format string) (*logrus.Logger, error) {
	lg := logrus.New()
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, err
	}
	lg.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		lg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		lg.SetFormatter(&logrus.JSONFormatter{})
	}
	return lg, nil
}

// Discard is a logger for tests and for callers that pass no logger.
func Discard() *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	return lg
}
