package observable

import (
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/nickrobson/observable/internal/logging"
)

// ErrorSink receives errors that have no consumer left to handle them: a
// failing Start, a failing Error or Complete callback, a failing teardown, or
// an error delivered to an Observer without an Error callback.
type ErrorSink interface {
	Report(err error)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(error)

func (f ErrorSinkFunc) Report(err error) {
	f(err)
}

type logSink struct {
	logger zerolog.Logger
}

// LogSink returns an ErrorSink that writes each error to logger at error level.
func LogSink(logger zerolog.Logger) ErrorSink {
	return logSink{logger: logger}
}

func (s logSink) Report(err error) {
	ev := s.logger.Error().Err(err)
	var pe *PanicError
	if errors.As(err, &pe) {
		ev = ev.Interface("panic", pe.Value).Str("stack", pe.Stack)
	}
	ev.Msg("unhandled observable error")
}

type sinkHolder struct {
	sink ErrorSink
}

var defaultSink atomic.Pointer[sinkHolder]

// DefaultErrorSink returns the process-wide sink used by observables created
// without WithErrorSink.
func DefaultErrorSink() ErrorSink {
	if h := defaultSink.Load(); h != nil {
		return h.sink
	}
	return LogSink(logging.Logger)
}

// SetDefaultErrorSink replaces the process-wide sink. Passing nil restores the
// logging sink.
func SetDefaultErrorSink(sink ErrorSink) {
	if sink == nil {
		defaultSink.Store(nil)
		return
	}
	defaultSink.Store(&sinkHolder{sink: sink})
}

// report hands err to sink. A sink must never throw; if it panics anyway the
// panic is logged and dropped.
func report(sink ErrorSink, logger zerolog.Logger, err error) {
	if err == nil {
		return
	}
	if sink == nil {
		sink = DefaultErrorSink()
	}
	if perr := guard(func() error { sink.Report(err); return nil }); perr != nil {
		logger.Warn().Err(err).AnErr("sink_error", perr).Msg("error sink panicked")
	}
}
