package logging

import "time"

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// BoolField creates a Field with a boolean value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// DurationField creates a Field holding d as text, e.g. "1.5ms".
func DurationField(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// ErrorField creates an "error" Field holding the error text,
// or nil when err is nil.
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// RecordFields flattens the identifying part of a check record.
// Diffs is only included for failed checks.
func RecordFields(r CheckRecord) []Field {
	fields := []Field{
		StringField("key", r.Key),
		StringField("subject", r.Subject),
		BoolField("negated", r.Negated),
	}
	if !r.Passed {
		fields = append(fields, IntField("diffs", r.Diffs))
	}
	return fields
}
