// Package benc is the root of a bencode serialization toolkit. It holds the
// global logger and the Prometheus collectors registered by the packages.
package benc

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var logout = zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(zerolog.InfoLevel)

// PromCollectors exposes Prometheus collectors created by the packages. It is
// up to the application to register them.
var PromCollectors []prometheus.Collector

// SetLogLevel parses the level and applies it to the global logger.
func SetLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	Logger = Logger.Level(lvl)

	return nil
}
