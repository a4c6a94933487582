package provision

import (
	"strings"

	"github.com/rs/zerolog"
	tclog "github.com/testcontainers/testcontainers-go/log"
)

// printfLogger routes testcontainers output to zerolog at debug level.
type printfLogger struct {
	logger zerolog.Logger
}

var _ tclog.Logger = printfLogger{}

// Logger returns a testcontainers logger writing to l.
func Logger(l zerolog.Logger) tclog.Logger {
	return printfLogger{logger: l.With().Str("component", "testcontainers").Logger()}
}

func (p printfLogger) Printf(format string, v ...any) {
	p.logger.Debug().Msgf(strings.TrimRight(format, "\n"), v...)
}
