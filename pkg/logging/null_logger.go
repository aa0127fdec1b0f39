package logging

// NullLogger discards everything. Checkers, engines and runners
// use it until a logger is configured.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field)  {}
func (NullLogger) Warn(string, ...Field)  {}
func (NullLogger) Error(string, ...Field) {}
func (NullLogger) Debug(string, ...Field) {}

// WithFields returns the NullLogger itself.
func (NullLogger) WithFields(...Field) Logger { return NullLogger{} }

func (NullLogger) LogCheck(CheckRecord) {}

func (NullLogger) Close() error { return nil }
