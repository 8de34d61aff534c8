package main

import (
	"fmt"
	"io"
	"log"

	"github.com/caarlos0/env/v11"
)

type config struct {
	// Trace logs every received and sent message to STDERR.
	Trace     bool   `env:"MAELSTROM_ECHO_TRACE" envDefault:"true"`
	LogPrefix string `env:"MAELSTROM_ECHO_LOG_PREFIX"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// logger returns the node logger writing to w, usually STDERR. STDOUT is
// reserved for protocol messages.
func (c config) logger(w io.Writer) *log.Logger {
	if !c.Trace {
		w = io.Discard
	}
	return log.New(w, c.LogPrefix, log.LstdFlags)
}
