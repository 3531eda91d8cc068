// Package logging provides leveled, module-named loggers for the import
// pipeline. Each package obtains its own named logger so verbosity can be
// tuned per module.
package logging

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level selects logger verbosity.
type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logging surface handed to pipeline packages.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a named logger for one pipeline module.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all logger output, replacing the backend.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	withFormat := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(withFormat)
	leveledBackend.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for every module.
func SetLevel(level Level) {
	var l logging.Level
	switch level {
	case Debug:
		l = logging.DEBUG
	case Info:
		l = logging.INFO
	case Notice:
		l = logging.NOTICE
	case Warning:
		l = logging.WARNING
	case Error:
		l = logging.ERROR
	}
	leveledBackend.SetLevel(l, "")
}

// Setup applies the usual CLI configuration: warnings only, or full
// debug output when verbose is set.
func Setup(verbose bool) {
	if verbose {
		SetLevel(Debug)
	} else {
		SetLevel(Warning)
	}
}

func init() {
	SetSink(os.Stderr)
}
