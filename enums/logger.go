package enums

// Log levels accepted in BM_LOG_LEVEL.
const (
	LogLevelDebug  = "debug"
	LogLevelInfo   = "info"
	LogLevelWarn   = "warn"
	LogLevelError  = "error"
	LogLevelFatal  = "fatal"
	LogLevelPanic  = "panic"
	LogLevelDPanic = "dpanic"
)

var logLevels = map[string]bool{
	LogLevelDebug:  true,
	LogLevelInfo:   true,
	LogLevelWarn:   true,
	LogLevelError:  true,
	LogLevelFatal:  true,
	LogLevelPanic:  true,
	LogLevelDPanic: true,
}

func IsLogLevel(level string) bool {
	return logLevels[level]
}
