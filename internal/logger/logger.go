// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the sync server and the client CLI.
//
// Both binaries emit JSON entries carrying a "role" field, a timestamp and
// the calling function under "func". Request and connection scoped loggers
// travel in context.Context and are read back with FromContext or
// FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	clientLogFileName   = "bijukaru-client.log"
	clientLogMaxSizeMB  = 10
	clientLogMaxBackups = 3
	clientLogMaxAgeDays = 28
)

// Logger embeds zerolog.Logger so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

var setupGlobals sync.Once

// configure sets the zerolog package globals shared by every logger.
func configure() {
	setupGlobals.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

func newLogger(w io.Writer, role string) *Logger {
	configure()
	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger returns a JSON logger writing to stdout. role tells apart the
// components sharing one log stream, e.g. "bijukaru-sync-server".
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger returns a logger for the interactive client. Stdout
// belongs to the console, so entries go to logs/bijukaru-client.log next to
// the executable, rotated by lumberjack at 10 MB with three backups kept for
// up to 28 days.
func NewClientLogger(role string) *Logger {
	return newLogger(clientLogWriter(), role)
}

func clientLogWriter() io.Writer {
	execPath, err := os.Executable()
	if err != nil {
		return os.Stderr
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(filepath.Dir(execPath), "logs", clientLogFileName),
		MaxSize:    clientLogMaxSizeMB,
		MaxBackups: clientLogMaxBackups,
		MaxAge:     clientLogMaxAgeDays,
	}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when there is none.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// WithStr returns a child logger carrying one more string field. Used to
// scope loggers to a device token or a session.
func (l *Logger) WithStr(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}
