package s3

import (
	"github.com/rs/zerolog"

	"github.com/c2fo/fixture/options"
)

const (
	optionNameClient  = "client"
	optionNameOptions = "options"
	optionNameLogger  = "logger"
)

// WithClient returns clientOpt implementation of options.Option
//
// WithClient is used to explicitly specify a Client to use for the store.
// The client is used to interact with the S3 service.
func WithClient(c Client) options.Option[Store] {
	return &clientOpt{
		client: c,
	}
}

type clientOpt struct {
	client Client
}

func (ct *clientOpt) Apply(s *Store) {
	s.client = ct.client
}

func (ct *clientOpt) OptionName() string {
	return optionNameClient
}

// WithOptions returns optionsOpt implementation of options.Option
//
// WithOptions is used to specify options for the store.
// The options are used to configure the client when one isn't supplied with WithClient.
func WithOptions(opts Options) options.Option[Store] {
	return &optionsOpt{
		options: opts,
	}
}

type optionsOpt struct {
	options Options
}

func (o *optionsOpt) Apply(s *Store) {
	s.options = o.options
}

func (o *optionsOpt) OptionName() string {
	return optionNameOptions
}

// WithLogger returns loggerOpt implementation of options.Option
//
// WithLogger sets the logger used for Debug SDK logging.
func WithLogger(l zerolog.Logger) options.Option[Store] {
	return &loggerOpt{
		logger: l,
	}
}

type loggerOpt struct {
	logger zerolog.Logger
}

func (o *loggerOpt) Apply(s *Store) {
	s.logger = o.logger
}

func (o *loggerOpt) OptionName() string {
	return optionNameLogger
}
