package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureOutput() *bytes.Buffer {
	var buf bytes.Buffer
	log = zerolog.New(&buf).Level(zerolog.DebugLevel)
	return &buf
}

func TestInit(t *testing.T) {
	Init()
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}

func TestInfo(t *testing.T) {
	buf := captureOutput()

	Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestInfoWithFields(t *testing.T) {
	buf := captureOutput()

	Info("HTTP request", "method", "GET", "status", 200)

	output := buf.String()
	assert.Contains(t, output, `"method":"GET"`)
	assert.Contains(t, output, `"status":200`)
}

func TestInfoOddFieldCount(t *testing.T) {
	buf := captureOutput()

	Info("lopsided", "method", "GET", "dangling")

	output := buf.String()
	assert.Contains(t, output, `"method":"GET"`)
	assert.Contains(t, output, `"extra":"dangling"`)
}

func TestInfof(t *testing.T) {
	buf := captureOutput()

	Infof("server starting on port %s", "8080")

	assert.Contains(t, buf.String(), "server starting on port 8080")
}

func TestError(t *testing.T) {
	buf := captureOutput()

	Error("test error", "cause", "timeout")

	output := buf.String()
	assert.Contains(t, output, "test error")
	assert.Contains(t, output, `"level":"error"`)
	assert.Contains(t, output, `"cause":"timeout"`)
}

func TestErrorf(t *testing.T) {
	buf := captureOutput()

	Errorf("failed after %d attempts", 3)

	assert.Contains(t, buf.String(), "failed after 3 attempts")
}

func TestDebug(t *testing.T) {
	buf := captureOutput()

	Debug("test debug")

	assert.Contains(t, buf.String(), "test debug")
}

func TestDebugf(t *testing.T) {
	buf := captureOutput()

	Debugf("cache %s", "miss")

	assert.Contains(t, buf.String(), "cache miss")
}
