// Package log is the leveled, structured logger used across calldata.
package log

// Logger accepts a message followed by alternating key/value tags, or a
// printf template in the ...f variants.
type Logger interface {
	Debug(msg string, tags ...any)
	Info(msg string, tags ...any)
	Warn(msg string, tags ...any)
	Error(msg string, tags ...any)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)

	With(tags ...any) Logger
}
