package logging

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// WithField returns a logger that attaches key=value to every entry.
	WithField(key string, value any) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) WithField(key string, value any) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

var (
	baseLoggerOnce sync.Once
	baseLogger     *logrus.Logger
)

func defaultBaseLogger() *logrus.Logger {
	baseLoggerOnce.Do(func() {
		baseLogger = logrus.New()
		baseLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return baseLogger
}

// NewLogger returns a logger bound to ctx. The registered factory wins over the
// logrus default.
func NewLogger(ctx context.Context) Logger {
	factory := GetLoggerFactory()
	if factory != nil {
		return factory.CreateLogger(ctx)
	}

	return newLogrusLogger(ctx)
}

func newLogrusLogger(ctx context.Context) Logger {
	return &logrusLogger{entry: defaultBaseLogger().WithContext(ctx)}
}

// NewLogrusFactory adapts an existing logrus logger into a LoggerFactory.
func NewLogrusFactory(logger *logrus.Logger) LoggerFactory {
	return logrusFactory{logger: logger}
}

type logrusFactory struct {
	logger *logrus.Logger
}

func (f logrusFactory) CreateLogger(ctx context.Context) Logger {
	return &logrusLogger{entry: f.logger.WithContext(ctx)}
}
