package runner

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
)

const (
	optionNamePolicy          = "policy"
	optionNameLogger          = "logger"
	optionNameProvisioner     = "provisioner"
	optionNameTeardownTimeout = "teardownTimeout"
)

// WithPolicy returns policyOpt implementation of options.Option
//
// WithPolicy sets what happens to remaining steps after a failure. The default is ContinueOnFailure.
func WithPolicy(p Policy) options.Option[Runner] {
	return &policyOpt{
		policy: p,
	}
}

type policyOpt struct {
	policy Policy
}

func (o *policyOpt) Apply(r *Runner) {
	r.policy = o.policy
}

func (o *policyOpt) OptionName() string {
	return optionNamePolicy
}

// WithLogger returns loggerOpt implementation of options.Option
//
// WithLogger routes run, step and container logs to l.
func WithLogger(l zerolog.Logger) options.Option[Runner] {
	return &loggerOpt{
		logger: l,
	}
}

type loggerOpt struct {
	logger zerolog.Logger
}

func (o *loggerOpt) Apply(r *Runner) {
	r.logger = o.logger
}

func (o *loggerOpt) OptionName() string {
	return optionNameLogger
}

// WithProvisioner returns provisionerOpt implementation of options.Option
//
// WithProvisioner replaces the docker provisioner. Services that supply their own provisioner still use it.
func WithProvisioner(p fixture.Provisioner) options.Option[Runner] {
	return &provisionerOpt{
		provisioner: p,
	}
}

type provisionerOpt struct {
	provisioner fixture.Provisioner
}

func (o *provisionerOpt) Apply(r *Runner) {
	r.provisioner = o.provisioner
}

func (o *provisionerOpt) OptionName() string {
	return optionNameProvisioner
}

// WithTeardownTimeout returns teardownTimeoutOpt implementation of options.Option
//
// WithTeardownTimeout bounds how long releasing the container may take.
func WithTeardownTimeout(d time.Duration) options.Option[Runner] {
	return &teardownTimeoutOpt{
		timeout: d,
	}
}

type teardownTimeoutOpt struct {
	timeout time.Duration
}

func (o *teardownTimeoutOpt) Apply(r *Runner) {
	r.teardownTimeout = o.timeout
}

func (o *teardownTimeoutOpt) OptionName() string {
	return optionNameTeardownTimeout
}
