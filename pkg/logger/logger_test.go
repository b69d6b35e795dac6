package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerLevels(t *testing.T) {
	InitLogger("debug")
	require.NotNil(t, Log)
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	InitLogger("warn")
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
}

func TestInitLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	InitLogger("chatty")
	require.NotNil(t, Log)
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
