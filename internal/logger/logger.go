package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Usable before Init for code paths that log during early startup or tests;
// Init switches to the console writer and service field.
var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

func Init() {
	zerolog.TimeFieldFormat = time.RFC3339

	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).
		Level(level()).
		With().
		Timestamp().
		Str("service", "hanhtrinhviet").
		Logger()
}

func level() zerolog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// withFields attaches trailing key/value pairs to an event.
// An odd trailing value is logged under the key "extra".
func withFields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	if len(kv)%2 != 0 {
		e = e.Interface("extra", kv[len(kv)-1])
	}
	return e
}

func Info(msg string, kv ...interface{}) {
	withFields(log.Info(), kv).Msg(msg)
}

func Infof(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

func Error(msg string, kv ...interface{}) {
	withFields(log.Error(), kv).Msg(msg)
}

func Errorf(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

func Debug(msg string, kv ...interface{}) {
	withFields(log.Debug(), kv).Msg(msg)
}

func Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

func Fatal(msg string) {
	log.Fatal().Msg(msg)
}

func Fatalf(format string, v ...interface{}) {
	log.Fatal().Msgf(format, v...)
}
