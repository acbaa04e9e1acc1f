package httpclient

import "github.com/rs/zerolog"

type RestyLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

func NewRestyLoggerForTest(logger zerolog.Logger) RestyLogger {
	return &restyLogger{logger: logger}
}
