package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
}

func TestInitWithOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput("info", &buf)
	defer InitWithOutput("info", &bytes.Buffer{})

	New("chart").WithField("kind", "bar").Info("built chart")
	New("chart").Debug("hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "built chart", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "chart", entry["component"])
	assert.Equal(t, "bar", entry["kind"])
	assert.Contains(t, entry, "timestamp")
}
