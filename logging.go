package authkit

import (
	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface. Args are
// alternating key/value pairs.
type ZerologLogger struct {
	zl zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerologLogger wraps the given zerolog logger.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

func (l *ZerologLogger) Debug(msg string, args ...any) { l.emit(l.zl.Debug(), msg, args...) }
func (l *ZerologLogger) Info(msg string, args ...any)  { l.emit(l.zl.Info(), msg, args...) }
func (l *ZerologLogger) Warn(msg string, args ...any)  { l.emit(l.zl.Warn(), msg, args...) }
func (l *ZerologLogger) Error(msg string, args ...any) { l.emit(l.zl.Error(), msg, args...) }

func (l *ZerologLogger) emit(event *zerolog.Event, msg string, args ...any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}
