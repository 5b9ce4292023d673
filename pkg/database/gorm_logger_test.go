package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newObservedGormLogger(level logger.LogLevel) (logger.Interface, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func querySQL() (string, int64) {
	return `SELECT * FROM "questions" WHERE id = 1`, 1
}

func TestGormLogger_TraceByLevel(t *testing.T) {
	testCases := []struct {
		name    string
		level   logger.LogLevel
		begin   time.Time
		err     error
		wantLvl zapcore.Level
		wantMsg string
	}{
		{"ошибка запроса", logger.Warn, time.Now(), errors.New("relation does not exist"), zapcore.ErrorLevel, "gorm query failed"},
		{"медленный запрос", logger.Warn, time.Now().Add(-time.Second), nil, zapcore.WarnLevel, "gorm slow query"},
		{"обычный запрос в режиме Info", logger.Info, time.Now(), nil, zapcore.DebugLevel, "gorm query"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l, logs := newObservedGormLogger(tc.level)

			// Act
			l.Trace(context.Background(), tc.begin, querySQL, tc.err)

			// Assert
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tc.wantLvl, entry.Level)
			assert.Equal(t, tc.wantMsg, entry.Message)
			assert.Equal(t, `SELECT * FROM "questions" WHERE id = 1`, entry.ContextMap()["sql"])
		})
	}
}

func TestGormLogger_QuietCases(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Warn)

	l.Trace(context.Background(), time.Now(), querySQL, nil)
	l.Trace(context.Background(), time.Now(), querySQL, gorm.ErrRecordNotFound)
	l.Info(context.Background(), "connected to %s", "db")

	assert.Equal(t, 0, logs.Len(), "Быстрые запросы и ErrRecordNotFound не пишутся на уровне Warn")
}

func TestGormLogger_LogModeReturnsCopy(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Warn)

	silent := l.LogMode(logger.Silent)
	silent.Error(context.Background(), "failed: %v", "boom")
	silent.Trace(context.Background(), time.Now(), querySQL, errors.New("boom"))
	l.Warn(context.Background(), "slow %d", 1)

	require.Equal(t, 1, logs.Len(), "LogMode не должен менять уровень исходного логгера")
	assert.Equal(t, "slow 1", logs.All()[0].Message)
}
