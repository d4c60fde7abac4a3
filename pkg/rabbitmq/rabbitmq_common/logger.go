package rabbitmq_common

// Logger is the key/value logging contract used inside this package. Services
// bridge their own logger to it.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (l *noopLogger) Debug(string, ...interface{})        {}
func (l *noopLogger) Info(string, ...interface{})         {}
func (l *noopLogger) Warn(string, ...interface{})         {}
func (l *noopLogger) Error(error, string, ...interface{}) {}

func NewNoopLogger() Logger {
	return &noopLogger{}
}
