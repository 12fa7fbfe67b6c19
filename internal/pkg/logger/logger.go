package logger

import (
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"noticeboard/internal/config"
)

const logFileName = "noticeboard.log"

// Configure points the global logger at a rotating file under paths.Logs.
// The terminal is owned by the UI, so nothing is written to stdout.
// The returned closer flushes and closes the log file.
func Configure(cfg config.AppConfig, paths config.Paths) io.Closer {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	file := &lumberjack.Logger{
		Filename:   filepath.Join(paths.Logs, logFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	level := zerolog.DebugLevel
	if cfg.Debug {
		level = zerolog.TraceLevel
	}

	log.Logger = New(file, level)
	return file
}

// New builds a timestamped logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(level)
}
