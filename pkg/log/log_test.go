package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("INFO"))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, parseLogLevel("Error"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("verbose"))
}

func TestConfValidate(t *testing.T) {
	conf := &Conf{Output: "file"}
	assert.Error(t, conf.Validate())

	conf.Path = t.TempDir()
	require.NoError(t, conf.Validate())
	assert.Equal(t, 100, conf.RotateSize)
	assert.Equal(t, 10, conf.RotateNum)
	assert.Equal(t, 7, conf.KeepDays)
}

func TestNewLogStdout(t *testing.T) {
	logger, err := NewLog(SetDefaults())
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NotNil(t, GetLogger())
}
