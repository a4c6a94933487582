package azure

import (
	"github.com/c2fo/fixture/options"
)

const (
	optionNameClient  = "client"
	optionNameOptions = "options"
)

// WithClient returns clientOpt implementation of options.Option
//
// WithClient is used to explicitly specify a Client to use for the store.
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
