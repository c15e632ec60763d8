package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
	originalLogger *zap.Logger
	observedLogs   *observer.ObservedLogs
}

func (suite *LoggerTestSuite) SetupSuite() {
	suite.originalLogger = zap.L()
}

func (suite *LoggerTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(suite.originalLogger)
}

func (suite *LoggerTestSuite) SetupTest() {
	var core zapcore.Core
	core, suite.observedLogs = observer.New(zap.DebugLevel)
	zap.ReplaceGlobals(zap.New(core))
}

func (suite *LoggerTestSuite) TestParseLevel() {
	testCases := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{"debug lowercase", "debug", zapcore.DebugLevel},
		{"debug short", "dbg", zapcore.DebugLevel},
		{"info mixed case", "Info", zapcore.InfoLevel},
		{"warning full", "warning", zapcore.WarnLevel},
		{"error short", "err", zapcore.ErrorLevel},
		{"fatal", "fatal", zapcore.FatalLevel},
		{"with whitespace", "  WARN\t", zapcore.WarnLevel},
		{"empty string", "", zapcore.InfoLevel},
		{"invalid level", "verbose", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, ParseLevel(tc.input))
		})
	}
}

func (suite *LoggerTestSuite) TestNewDoesNotReplaceGlobal() {
	before := zap.L()

	logger, err := New(&Config{Level: "debug", Env: "test", ServiceName: "bm-gateway"})
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), logger)

	assert.Same(suite.T(), before, zap.L())
	assert.True(suite.T(), logger.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestInit() {
	require.NotPanics(suite.T(), func() {
		Init(&Config{Level: "warn", Env: "production", ServiceName: "bm-gateway"})
	})
	assert.False(suite.T(), zap.L().Core().Enabled(zapcore.InfoLevel))
	assert.True(suite.T(), zap.L().Core().Enabled(zapcore.WarnLevel))
}

func (suite *LoggerTestSuite) TestLoggingFunctions() {
	testCases := []struct {
		name    string
		logFunc func()
		level   zapcore.Level
		message string
	}{
		{"LogDebug", func() { LogDebug("refresh started") }, zapcore.DebugLevel, "refresh started"},
		{"LogInfof", func() { LogInfof("user %s signed in", "rahim") }, zapcore.InfoLevel, "user rahim signed in"},
		{"LogWarnf without args", func() { LogWarnf("session cleared") }, zapcore.WarnLevel, "session cleared"},
		{"LogErrorf", func() { LogErrorf("refresh failed with %d", 500) }, zapcore.ErrorLevel, "refresh failed with 500"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.observedLogs.TakeAll()

			tc.logFunc()

			logs := suite.observedLogs.All()
			require.Len(suite.T(), logs, 1)
			assert.Equal(suite.T(), tc.level, logs[0].Level)
			assert.Equal(suite.T(), tc.message, logs[0].Message)
		})
	}
}

func (suite *LoggerTestSuite) TestNamed() {
	suite.observedLogs.TakeAll()

	Named("gateway").Info("hello")

	logs := suite.observedLogs.All()
	require.Len(suite.T(), logs, 1)
	assert.Equal(suite.T(), "gateway", logs[0].LoggerName)
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
