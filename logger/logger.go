package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func SetupLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

func SetLevel(lvl int8) {
	zerolog.SetGlobalLevel(zerolog.Level(lvl))
}

// Pretty switches the global logger to a human-readable console writer.
// Intended for dev runs; prod keeps the default JSON output.
func Pretty() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func New(cmd, ctx string) zerolog.Logger {
	logger := log.With()

	if cmd != "" {
		logger = logger.Str("cmd", cmd)
	}
	if ctx != "" {
		logger = logger.Str("ctx", ctx)
	}

	return logger.Logger()
}
