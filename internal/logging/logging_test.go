package logging

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
}

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	require.NoError(t, err)
	assert.Equal(t, len(msg)*2, n)
	assert.Equal(t, "already-here"+msg, sb1.String())
	assert.Equal(t, msg, sb2.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(faultyWriter{}, sb)

	n, err := cw.Write([]byte("abc"))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", sb.String())
}

func TestSetup_WritesToRotatingFile(t *testing.T) {
	defer logrus.SetOutput(logrus.StandardLogger().Out)

	path := filepath.Join(t.TempDir(), "logs", "lifttrack")
	Setup(LoggerSetupParams{LogFileName: path, LogLevel: "debug", LogFormatJSON: true})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	Setup(LoggerSetupParams{LogLevel: "info"})
	_, ok = logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

type faultyWriter struct{}

func (faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
