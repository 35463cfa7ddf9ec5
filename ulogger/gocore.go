package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger logs through the gocore logger. Its level is fixed when it is
// created.
type GoCoreLogger struct {
	*gocore.Logger
	skipFrame int
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	opts := applyOptions(options)

	return &GoCoreLogger{
		Logger:    gocore.Log(serviceOrDefault(service), gocore.NewLogLevelFromString(opts.logLevel)),
		skipFrame: opts.skip,
	}
}

// New creates a logger for another service at the parent's level unless the
// options name one.
func (g *GoCoreLogger) New(service string, options ...Option) Logger {
	opts := applyOptions(options)

	level := g.Logger.GetLogLevel()
	if opts.levelSet {
		level = gocore.NewLogLevelFromString(opts.logLevel)
	}

	return &GoCoreLogger{
		Logger:    gocore.Log(serviceOrDefault(service), level),
		skipFrame: opts.skip,
	}
}

func (g *GoCoreLogger) Duplicate(options ...Option) Logger {
	dup := &GoCoreLogger{Logger: g.Logger, skipFrame: g.skipFrame}
	if opts := applyOptions(options); opts.skip != 0 {
		dup.skipFrame = opts.skip
	}

	return dup
}

// SetLogLevel is a no-op, gocore loggers take their level at creation.
func (g *GoCoreLogger) SetLogLevel(_ string) {}
