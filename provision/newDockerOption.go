package provision

import (
	"github.com/rs/zerolog"

	"github.com/c2fo/fixture/options"
)

const optionNameLogger = "logger"

// WithLogger returns loggerOpt implementation of options.Option
//
// WithLogger is used to route testcontainers output to a specific zerolog.Logger.
func WithLogger(l zerolog.Logger) options.Option[Docker] {
	return &loggerOpt{
		logger: l,
	}
}

type loggerOpt struct {
	logger zerolog.Logger
}

func (o *loggerOpt) Apply(d *Docker) {
	d.logger = o.logger
}

func (o *loggerOpt) OptionName() string {
	return optionNameLogger
}
