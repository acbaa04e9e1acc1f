package httpclient

import (
	"strings"

	"github.com/rs/zerolog"
)

type restyLogger struct {
	logger zerolog.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Str("component", "resty").Msgf(strings.TrimSpace(format), v...)
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Str("component", "resty").Msgf(strings.TrimSpace(format), v...)
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Str("component", "resty").Msgf(strings.TrimSpace(format), v...)
}
