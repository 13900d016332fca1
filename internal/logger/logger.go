package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Keys read by WithContext. Middleware stores them on *gin.Context with
// c.Set under these names; plain contexts carry them via WithEmail,
// WithRequestID and WithProjectID.
const (
	EmailKey     = "email"
	RequestIDKey = "request_id"
	ProjectIDKey = "project_id"
)

type ctxKey string

// WithEmail returns a copy of ctx carrying the caller's email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKey(EmailKey), email)
}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey(RequestIDKey), id)
}

// WithProjectID returns a copy of ctx carrying the project id.
func WithProjectID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey(ProjectIDKey), id)
}

// Value returns the string stored under name, checking the typed key
// first and then the plain name used by gin.Context.Set.
func Value(ctx context.Context, name string) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey(name)).(string); ok {
		return v
	}
	v, _ := ctx.Value(name).(string)
	return v
}

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithContext creates a logger carrying the caller and request id found in ctx
func WithContext(ctx context.Context) *Logger {
	l := New()
	if ctx == nil {
		return l.WithField("user", "unknown")
	}

	if email := Value(ctx, EmailKey); email != "" {
		l = l.WithField("user", email)
	} else {
		l = l.WithField("user", "unknown")
	}
	if id := Value(ctx, RequestIDKey); id != "" {
		l = l.WithField("request_id", id)
	}
	if id := Value(ctx, ProjectIDKey); id != "" {
		l = l.WithField("project_id", id)
	}
	return l
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Entry: l.Entry.WithField(key, value)}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{Entry: l.Entry.WithFields(fields)}
}

// WithError attaches err under the standard "error" field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Entry: l.Entry.WithError(err)}
}

// Setup configures the standard logger: JSON to stdout at the given level.
// Unknown levels fall back to info.
func Setup(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
