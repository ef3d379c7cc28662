package log

import (
	"log/slog"
	"os"
)

// Logger is a thin wrapper over slog.Logger that tags every record with
// the owning component.
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

// New creates a component-tagged logger writing text records to stdout.
func New(component string, level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	base := slog.New(handler)
	return &Logger{
		Logger:    base.With("component", component),
		base:      base,
		component: component,
	}
}

// With returns a logger carrying additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		base:      l.base,
		component: l.component,
	}
}

// WithComponent returns a logger tagged with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With("component", component),
		base:      l.base,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}
