// Package logging provides the wallet's leveled logging backend, built
// around go-logging with per-module loggers.
package logging

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/op/go-logging.v1"
)

// Backend is a shared log backend handing out per-module loggers.
type Backend struct {
	w       io.Writer
	backend logging.LeveledBackend
}

// GetLogger returns a per-module logger that writes to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b.backend)
	return l
}

// New initializes a logging backend writing to file f (stdout if empty,
// discarded entirely if disable is set) at the given level.
func New(f string, level string, disable bool) (*Backend, error) {
	b := new(Backend)

	lvl, err := levelFromString(level)
	if err != nil {
		return nil, err
	}

	switch {
	case disable:
		b.w = io.Discard
	case f == "":
		b.w = os.Stdout
	default:
		const fileMode = 0o600
		flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
		b.w, err = os.OpenFile(f, flags, fileMode)
		if err != nil {
			return nil, fmt.Errorf("logging: failed to create log file: %v", err)
		}
	}

	logFmt := logging.MustStringFormatter("%{time:15:04:05.000} %{level:.4s} %{module}: %{message}")
	base := logging.NewLogBackend(b.w, "", 0)
	formatted := logging.NewBackendFormatter(base, logFmt)
	b.backend = logging.AddModuleLevel(formatted)
	b.backend.SetLevel(lvl, "")
	return b, nil
}

func levelFromString(l string) (logging.Level, error) {
	switch l {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, fmt.Errorf("logging: invalid level: '%v'", l)
	}
}
