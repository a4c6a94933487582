package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/c2fo/fixture"
)

// Config holds the settings shared by every service preset. Each preset fills in its own defaults before applying
// options.
type Config struct {
	// ContainerName names the container. Empty lets the runtime pick one, which allows parallel runs.
	ContainerName string
	Image         string
	ReadyTimeout  time.Duration
	PollInterval  time.Duration
	Credentials   fixture.Credentials
	// UseModule starts the container through its testcontainers module where the preset supports one.
	UseModule bool
	Logger    zerolog.Logger
}

// Request returns a fixture.Request carrying the config's name, image and readiness bounds.
func (c Config) Request() fixture.Request {
	return fixture.Request{
		Name:         c.ContainerName,
		Image:        c.Image,
		ReadyTimeout: c.ReadyTimeout,
		PollInterval: c.PollInterval,
	}
}
