package forkpool

import "go.uber.org/zap"

// Logger is the diagnostics sink a Pool writes to. It is deliberately
// narrow (three severities, key-value pairs) so a test can supply a
// gomock-generated fake without dragging in zap's full interface.
type Logger interface {
	Debugw(msg string, kv ...interface{})
	Warnw(msg string, kv ...interface{})
	Errorw(msg string, kv ...interface{})
}

type zapLogger struct {
	l *zap.SugaredLogger
}

func newZapLogger() Logger {
	l, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails if the default config's sinks can't
		// be opened; fall back to a no-op core rather than panic from a
		// library constructor.
		return noopLogger{}
	}
	return &zapLogger{l: l.Sugar()}
}

func (z *zapLogger) Debugw(msg string, kv ...interface{}) { z.l.Debugw(msg, kv...) }
func (z *zapLogger) Warnw(msg string, kv ...interface{})  { z.l.Warnw(msg, kv...) }
func (z *zapLogger) Errorw(msg string, kv ...interface{}) { z.l.Errorw(msg, kv...) }

type noopLogger struct{}

func (noopLogger) Debugw(string, ...interface{}) {}
func (noopLogger) Warnw(string, ...interface{})  {}
func (noopLogger) Errorw(string, ...interface{}) {}
