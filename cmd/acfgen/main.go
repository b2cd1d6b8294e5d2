package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-acfgen/internal/logging"
)

func main() {
	os.Exit(execute(defaultEnv(), os.Args[1:]))
}

func execute(e *env, args []string) int {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		logger := e.errorLogger()
		logger.Error().Err(err).Msg("acfgen failed")
		return 1
	}
	return 0
}

// errorLogger returns the configured logger, or a stderr logger when the
// command failed before configuration was loaded.
func (e *env) errorLogger() zerolog.Logger {
	if e.configured {
		return e.logger
	}
	return logging.New(logging.Config{
		Level:  zerolog.ErrorLevel,
		Output: e.stderr,
	})
}
