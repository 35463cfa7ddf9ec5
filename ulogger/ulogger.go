// Package ulogger is the logging facade used throughout the consensus engine.
// Components receive a Logger at construction and never log through a global.
package ulogger

// Backends selectable with WithLoggerType or the "logger" config key.
const (
	LoggerTypeZerolog = "zerolog"
	LoggerTypeGoCore  = "gocore"
)

// defaultService names loggers created without one.
const defaultService = "consensus"

type Logger interface {
	LogLevel() int
	SetLogLevel(level string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	New(service string, options ...Option) Logger
	Duplicate(options ...Option) Logger
}

// New returns a logger for service on the backend selected by the options.
func New(service string, options ...Option) Logger {
	if applyOptions(options).loggerType == LoggerTypeGoCore {
		return NewGoCoreLogger(service, options...)
	}

	return NewZeroLogger(service, options...)
}

func applyOptions(options []Option) *Options {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return opts
}

func serviceOrDefault(service string) string {
	if service == "" {
		return defaultService
	}

	return service
}
