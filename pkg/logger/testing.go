package logger

// NoopLogger discards everything, for use in tests
type NoopLogger struct{}

func NewNoopLogger() Logger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string) {}
func (l *NoopLogger) Info(msg string)  {}
func (l *NoopLogger) Warn(msg string)  {}
func (l *NoopLogger) Error(msg string) {}
func (l *NoopLogger) Fatal(msg string) {}

func (l *NoopLogger) WithField(key string, value interface{}) Logger {
	return l
}

func (l *NoopLogger) WithFields(fields map[string]interface{}) Logger {
	return l
}
