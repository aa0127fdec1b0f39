package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Info(msg string, fields ...Field) {
	m.Called(msg, fields)
}
func (m *mockLogger) Warn(msg string, fields ...Field) {
	m.Called(msg, fields)
}
func (m *mockLogger) Error(msg string, fields ...Field) {
	m.Called(msg, fields)
}
func (m *mockLogger) Debug(msg string, fields ...Field) {
	m.Called(msg, fields)
}
func (m *mockLogger) WithFields(fields ...Field) Logger {
	args := m.Called(fields)
	return args.Get(0).(Logger)
}
func (m *mockLogger) LogCheck(record CheckRecord) {
	m.Called(record)
}
func (m *mockLogger) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestRedactingLogger_RedactsMessage(t *testing.T) {
	inner := new(mockLogger)
	secret := "sk-ant-1234567890abcdef"
	logger := NewRedactingLogger(inner, secret)

	expected := "sk-a*******************"
	inner.On("Info", "key: "+expected, mock.Anything).Return()

	logger.Info("key: " + secret)
	inner.AssertExpectations(t)
}

func TestRedactingLogger_RedactsFields(t *testing.T) {
	inner := new(mockLogger)
	secret := "supersecretapikey123"
	logger := NewRedactingLogger(inner, secret)

	inner.On(
		"Warn", "msg", mock.MatchedBy(
			func(fields []Field) bool {
				if len(fields) != 2 {
					return false
				}
				val, ok := fields[0].Value.(string)
				return ok && val != secret && fields[1].Value == 7
			},
		),
	).Return()

	logger.Warn("msg", StringField("token", secret), IntField("n", 7))
	inner.AssertExpectations(t)
}

func TestRedactingLogger_ShortSecretIgnored(t *testing.T) {
	inner := new(mockLogger)
	logger := NewRedactingLogger(inner, "ab")

	inner.On("Error", "ab is short", mock.Anything).Return()

	logger.Error("ab is short")
	inner.AssertExpectations(t)
}

func TestRedactingLogger_Debug_MultipleSecrets(t *testing.T) {
	inner := new(mockLogger)
	logger := NewRedactingLogger(inner, "password123", "tokenABCDEF")

	inner.On("Debug", "pass******* and toke*******", mock.Anything).Return()

	logger.Debug("password123 and tokenABCDEF")
	inner.AssertExpectations(t)
}

func TestRedactingLogger_WithFields(t *testing.T) {
	inner := new(mockLogger)
	childInner := new(mockLogger)
	secret := "longsecretvalue12345"
	logger := NewRedactingLogger(inner, secret)

	inner.On("WithFields", mock.Anything).Return(childInner)

	child := logger.WithFields(StringField("k", "v"))

	rl, ok := child.(*RedactingLogger)
	assert.True(t, ok)
	assert.Equal(t, []string{secret}, rl.secrets)
}

// Failure messages quote the compared values, which may be
// credentials under test.
func TestRedactingLogger_LogCheck(t *testing.T) {
	inner := new(mockLogger)
	secret := "hunter2hunter2"
	logger := NewRedactingLogger(inner, secret)

	inner.On("LogCheck", mock.MatchedBy(func(r CheckRecord) bool {
		return r.Key == "not_equal" &&
			r.Message == `The checked [hunt**********] is different: "hunt**********".`
	})).Return()

	logger.LogCheck(CheckRecord{
		Key:     "not_equal",
		Subject: secret,
		Message: `The checked [` + secret + `] is different: "` + secret + `".`,
	})
	inner.AssertExpectations(t)
}

func TestRedactingLogger_Close(t *testing.T) {
	inner := new(mockLogger)
	inner.On("Close").Return(nil)

	assert.NoError(t, NewRedactingLogger(inner).Close())
	inner.AssertExpectations(t)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***", mask("abc"))
	assert.Equal(t, "abcd**", mask("abcdef"))
}

func TestRedactingLogger_ErrorAndStringerFields(t *testing.T) {
	inner := new(mockLogger)
	secret := "correcthorse"
	logger := NewRedactingLogger(inner, secret)

	inner.On("Error", "msg", []Field{
		{Key: "error", Value: "bad token corr********"},
		{Key: "took", Value: "1s"},
		{Key: "n", Value: 3},
	}).Return()

	logger.Error("msg",
		ErrorField(errors.New("bad token "+secret)),
		Field{Key: "took", Value: time.Second},
		IntField("n", 3),
	)
	inner.AssertExpectations(t)
}

func TestRedactingLogger_NoSecrets(t *testing.T) {
	inner := new(mockLogger)
	inner.On("Info", "untouched", []Field{StringField("k", "v")}).Return()

	NewRedactingLogger(inner, "", "  ", "abc").Info("untouched", StringField("k", "v"))
	inner.AssertExpectations(t)
}
