package fixture

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/c2fo/fixture/options"
)

const (
	optionNameLogger          = "logger"
	optionNameTeardownTimeout = "teardownTimeout"
)

// WithLogger returns loggerOpt implementation of options.Option
//
// WithLogger is used to route fixture lifecycle logs to a specific zerolog.Logger.
// The default is the global github.com/rs/zerolog/log.Logger.
func WithLogger(l zerolog.Logger) options.Option[Fixture] {
	return &loggerOpt{
		logger: l,
	}
}

type loggerOpt struct {
	logger zerolog.Logger
}

func (o *loggerOpt) Apply(f *Fixture) {
	f.logger = o.logger
}

func (o *loggerOpt) OptionName() string {
	return optionNameLogger
}

// WithTeardownTimeout returns teardownTimeoutOpt implementation of options.Option
//
// WithTeardownTimeout bounds how long Release waits for the container to stop.
func WithTeardownTimeout(d time.Duration) options.Option[Fixture] {
	return &teardownTimeoutOpt{
		timeout: d,
	}
}

type teardownTimeoutOpt struct {
	timeout time.Duration
}

func (o *teardownTimeoutOpt) Apply(f *Fixture) {
	if o.timeout > 0 {
		f.teardownTimeout = o.timeout
	}
}

func (o *teardownTimeoutOpt) OptionName() string {
	return optionNameTeardownTimeout
}
