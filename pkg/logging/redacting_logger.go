package logging

import (
	"fmt"
	"strings"
)

// minSecretLen is the shortest string treated as a secret.
const minSecretLen = 5

// RedactingLogger masks secrets before they reach the inner
// logger. Messages, textual field values and the subject and
// message of check records are redacted.
type RedactingLogger struct {
	inner    Logger
	secrets  []string
	replacer *strings.Replacer
}

// NewRedactingLogger creates a logger masking the given secrets.
// A masked secret keeps its first four characters.
func NewRedactingLogger(inner Logger, secrets ...string) *RedactingLogger {
	var kept, pairs []string
	for _, s := range secrets {
		s = strings.TrimSpace(s)
		if len(s) < minSecretLen {
			continue
		}
		kept = append(kept, s)
		pairs = append(pairs, s, mask(s))
	}
	return &RedactingLogger{
		inner:    inner,
		secrets:  kept,
		replacer: strings.NewReplacer(pairs...),
	}
}

// mask hides all but the first four characters of s.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func (r *RedactingLogger) redact(s string) string {
	if len(r.secrets) == 0 {
		return s
	}
	return r.replacer.Replace(s)
}

func (r *RedactingLogger) redactFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			f.Value = r.redact(v)
		case error:
			f.Value = r.redact(v.Error())
		case fmt.Stringer:
			f.Value = r.redact(v.String())
		}
		out[i] = f
	}
	return out
}

func (r *RedactingLogger) Info(msg string, fields ...Field) {
	r.inner.Info(r.redact(msg), r.redactFields(fields)...)
}

func (r *RedactingLogger) Warn(msg string, fields ...Field) {
	r.inner.Warn(r.redact(msg), r.redactFields(fields)...)
}

func (r *RedactingLogger) Error(msg string, fields ...Field) {
	r.inner.Error(r.redact(msg), r.redactFields(fields)...)
}

func (r *RedactingLogger) Debug(msg string, fields ...Field) {
	r.inner.Debug(r.redact(msg), r.redactFields(fields)...)
}

// WithFields redacts the fields and wraps the inner child.
func (r *RedactingLogger) WithFields(fields ...Field) Logger {
	return &RedactingLogger{
		inner:    r.inner.WithFields(r.redactFields(fields)...),
		secrets:  r.secrets,
		replacer: r.replacer,
	}
}

// LogCheck records the check with its subject and message
// redacted.
func (r *RedactingLogger) LogCheck(record CheckRecord) {
	record.Subject = r.redact(record.Subject)
	record.Message = r.redact(record.Message)
	r.inner.LogCheck(record)
}

// Close closes the inner logger.
func (r *RedactingLogger) Close() error {
	return r.inner.Close()
}
