package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init("loud", ""))
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	require.NoError(t, Init("info", ""))
	Debugf("hidden %d", 1)
	Infof("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestWithFieldsWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	require.NoError(t, Init("info", ""))
	WithFields(Fields{"table": "customer", "rows": 3}).Info("table synced")

	out := buf.String()
	assert.Contains(t, out, "table=customer")
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "level=info")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")
	require.NoError(t, Init("info", path))
	defer func() {
		Close()
		SetOutput(os.Stdout)
	}()

	Info("to the file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
}
