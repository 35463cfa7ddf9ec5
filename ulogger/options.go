package ulogger

import (
	"io"
	"os"

	"github.com/ordishs/gocore"
)

type Options struct {
	logLevel   string
	loggerType string
	writer     io.Writer
	skip       int
	pretty     bool
	levelSet   bool
}

type Option func(*Options)

// DefaultOptions reads the logging defaults from the gocore config, so a node can
// switch backend or level without code changes.
func DefaultOptions() *Options {
	logLevel, _ := gocore.Config().Get("logLevel", "INFO")
	loggerType, _ := gocore.Config().Get("logger", LoggerTypeZerolog)

	return &Options{
		logLevel:   logLevel,
		loggerType: loggerType,
		writer:     os.Stdout,
		skip:       0,
		pretty:     gocore.Config().GetBool("PRETTY_LOGS", true),
	}
}

func WithLevel(level string) Option {
	return func(o *Options) {
		o.logLevel = level
		o.levelSet = true
	}
}

func WithLoggerType(loggerType string) Option {
	return func(o *Options) {
		o.loggerType = loggerType
	}
}

func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}

func WithSkipFrame(skip int) Option {
	return func(o *Options) {
		o.skip = skip
	}
}

// WithPrettyLogs toggles the console writer; JSON lines are written when false.
func WithPrettyLogs(pretty bool) Option {
	return func(o *Options) {
		o.pretty = pretty
	}
}
