// Package rlog wraps op/go-logging with the level set and sink handling the renderer's
// two passes and CLI entrypoint use for progress and diagnostic output.
package rlog

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is the renderer's verbosity level, decoupled from logging.Level so callers never
// need to import op/go-logging directly.
type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logging interface every package in this module logs through.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger; the name shows up as the module field in log lines.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects log output.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the minimum level that reaches the sink.
func SetLevel(level Level) {
	var loggingLevel logging.Level

	switch level {
	case Debug:
		loggingLevel = logging.DEBUG
	case Info:
		loggingLevel = logging.INFO
	case Notice:
		loggingLevel = logging.NOTICE
	case Warning:
		loggingLevel = logging.WARNING
	case Error:
		loggingLevel = logging.ERROR
	}

	leveledBackend.SetLevel(loggingLevel, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
