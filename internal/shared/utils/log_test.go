package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogErrorWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogError(logger, "export failed", errors.New("boom"), map[string]interface{}{
		"report": "dashboard",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "export failed", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "dashboard", entry["report"])
}

func TestLogWarnAndInfoLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogWarn(logger, "fallback", nil)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	LogInfo(logger, "done", map[string]interface{}{"rows": 3})
	assert.Contains(t, buf.String(), `"rows":3`)
}
