package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestAddAndRemoveWriter will test Logger.AddWriter and Logger.RemoveWriter to ensure that they work as expected.
func TestAddAndRemoveWriter(t *testing.T) {
	// Create a base logger
	logger := NewLogger(zerolog.InfoLevel, false)

	var stdoutBuf, stderrBuf bytes.Buffer

	// Add two writers
	logger.AddWriter(&stdoutBuf, UNSTRUCTURED)
	logger.AddWriter(&stderrBuf, STRUCTURED)

	// We should expect the underlying writers list to be updated
	assert.Equal(t, 2, len(logger.writers))

	// Try to add a duplicate writer; the list should not grow
	logger.AddWriter(&stdoutBuf, UNSTRUCTURED)
	assert.Equal(t, 2, len(logger.writers))

	// Remove each writer
	logger.RemoveWriter(&stdoutBuf)
	assert.Equal(t, 1, len(logger.writers))
	logger.RemoveWriter(&stderrBuf)
	assert.Equal(t, 0, len(logger.writers))
}

// TestStructuredOutputContainsMessageAndInfo verifies that Info() writes both the message and any
// StructuredLogInfo provided to it through to a structured (JSON) writer.
func TestStructuredOutputContainsMessageAndInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	logger.Info("path discovered", StructuredLogInfo{"iterations": 3})

	out := buf.String()
	assert.Contains(t, out, "path discovered")
	assert.Contains(t, out, "\"iterations\":3")
}

// TestSubLoggerCarriesContext verifies that NewSubLogger tags every subsequent log line with its key/value pair.
func TestSubLoggerCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)
	sub := logger.NewSubLogger("module", "explorer")

	sub.Info("hello")

	assert.Contains(t, buf.String(), "\"module\":\"explorer\"")
}
