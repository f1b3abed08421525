package mylog

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	logger *logrus.Entry
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		logger: logrus.StandardLogger().WithField("component", componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...interface{}) {
	entry := l.logger
	if traceLabel != "" {
		entry = entry.WithField("aggregate", traceLabel)
	}

	msg := fmt.Sprintf(format, a...)
	switch severity {
	case SeverityDebug:
		entry.Debug(msg)
	case SeverityWarn:
		entry.Warn(msg)
	case SeverityError:
		entry.Error(msg)
	default:
		entry.Info(msg)
	}
}
