package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = newLogger(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = newLogger(config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestTerminalNotifierNonTerminal(t *testing.T) {
	in, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer in.Close()

	var out bytes.Buffer
	n := newTerminalNotifier(&out, in)
	require.NoError(t, n.Inform(context.Background(), "There are no links to display"))

	assert.Equal(t, "\nThere are no links to display\n", out.String())
	assert.False(t, isTerminal(in))
	assert.False(t, isTerminal(nil))
}

func TestCellAt(t *testing.T) {
	row, col, err := cellAt("B2")
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)

	row, col, err = cellAt("$C$10")
	require.NoError(t, err)
	assert.Equal(t, 10, row)
	assert.Equal(t, 3, col)

	for _, ref := range []string{"A1:B2", "Data!A2", "", "2B"} {
		_, _, err := cellAt(ref)
		assert.Error(t, err, ref)
	}
}
