// Package stdlogger adapts the global zerolog logger to printf style logger
// interfaces, such as the writer expected by gorm's logger.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to the global zerolog logger.
type Logger struct {
	// Level used by Printf. Default: zerolog.InfoLevel
	Level zerolog.Level

	component string
}

// New returns a logger writing at info level for Printf.
func New() *Logger {
	return &Logger{Level: zerolog.InfoLevel}
}

// NewComponent returns a logger that tags every line with component and logs Printf at level.
func NewComponent(component string, level zerolog.Level) *Logger {
	return &Logger{Level: level, component: component}
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	e := log.WithLevel(level)
	if l.component != "" {
		e = e.Str("component", l.component)
	}

	return e
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, v ...any) {
	l.event(l.Level).Msgf(format, v...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...any) {
	l.event(zerolog.DebugLevel).Msgf(format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...any) {
	l.event(zerolog.InfoLevel).Msgf(format, v...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, v ...any) {
	l.event(zerolog.WarnLevel).Msgf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...any) {
	l.event(zerolog.ErrorLevel).Msgf(format, v...)
}
