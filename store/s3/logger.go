package s3

import (
	"fmt"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
)

// s3LogToZeroLogAdapter routes SDK client logs to zerolog.
type s3LogToZeroLogAdapter struct {
	logger zerolog.Logger
}

func newS3Logger(logger zerolog.Logger) s3LogToZeroLogAdapter {
	return s3LogToZeroLogAdapter{
		logger: logger,
	}
}

func (adapter s3LogToZeroLogAdapter) Logf(severity logging.Classification, msg string, args ...interface{}) {
	msg = fmt.Sprintf("[s3:%s] %s", severity, msg)
	event := adapter.logger.Debug()
	if severity == logging.Warn {
		event = adapter.logger.Warn()
	}
	if len(args) > 0 {
		event.Msgf(msg, args...)
	} else {
		event.Msg(msg)
	}
}
