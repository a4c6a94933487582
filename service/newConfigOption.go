package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
)

const (
	optionNameImage         = "image"
	optionNameContainerName = "containerName"
	optionNameReadyTimeout  = "readyTimeout"
	optionNamePollInterval  = "pollInterval"
	optionNameCredentials   = "credentials"
	optionNameModule        = "module"
	optionNameLogger        = "logger"
)

// WithImage overrides the preset's image, ie: "minio/minio:RELEASE.2024-01-16T16-07-38Z".
func WithImage(image string) options.Option[Config] {
	return options.Func(optionNameImage, func(c *Config) {
		if image != "" {
			c.Image = image
		}
	})
}

// WithContainerName gives the container a fixed name.
func WithContainerName(name string) options.Option[Config] {
	return options.Func(optionNameContainerName, func(c *Config) {
		c.ContainerName = name
	})
}

// WithReadyTimeout bounds how long the service may take to become ready.
func WithReadyTimeout(d time.Duration) options.Option[Config] {
	return options.Func(optionNameReadyTimeout, func(c *Config) {
		c.ReadyTimeout = d
	})
}

// WithPollInterval sets how often readiness is re-checked.
func WithPollInterval(d time.Duration) options.Option[Config] {
	return options.Func(optionNamePollInterval, func(c *Config) {
		c.PollInterval = d
	})
}

// WithCredentials overrides the preset's static credentials.
func WithCredentials(creds fixture.Credentials) options.Option[Config] {
	return options.Func(optionNameCredentials, func(c *Config) {
		c.Credentials = creds
	})
}

// WithModule starts the container through its testcontainers module instead of a generic container request.
func WithModule() options.Option[Config] {
	return options.Func(optionNameModule, func(c *Config) {
		c.UseModule = true
	})
}

// WithLogger routes module container output to l.
func WithLogger(l zerolog.Logger) options.Option[Config] {
	return options.Func(optionNameLogger, func(c *Config) {
		c.Logger = l
	})
}
