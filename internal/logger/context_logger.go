package logger

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	// ContextLogger is a named logger whose level and context fields are
	// managed by the global configuration. Safe for concurrent use.
	ContextLogger struct {
		mu         sync.RWMutex
		zeroLogger zerolog.Logger
		level      LogLevel
	}

	Context map[string]interface{}
)

func (c *ContextLogger) update(level LogLevel, context Context) {
	zeroLogger := log.Level(toZeroLevel(level))
	for key, value := range context {
		zeroLogger = zeroLogger.With().Interface(key, value).Logger()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
	c.zeroLogger = zeroLogger
}

func (c *ContextLogger) logger() *zerolog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	zl := c.zeroLogger
	return &zl
}

func (c *ContextLogger) Trace(format string, args ...interface{}) {
	c.logMessage(c.logger().Trace(), format, args)
}

func (c *ContextLogger) Debug(format string, args ...interface{}) {
	c.logMessage(c.logger().Debug(), format, args)
}

func (c *ContextLogger) Info(format string, args ...interface{}) {
	c.logMessage(c.logger().Info(), format, args)
}

func (c *ContextLogger) Warning(format string, args ...interface{}) {
	c.logMessage(c.logger().Warn(), format, args)
}

func (c *ContextLogger) Error(format string, args ...interface{}) {
	c.logMessage(c.logger().Error(), format, args)
}

func (c *ContextLogger) logMessage(event *zerolog.Event, format string, args []interface{}) {
	if len(args) == 0 {
		event.Msg(format)
	} else {
		event.Msgf(format, args...)
	}
}

// ChangeLevel changes the level of the context logger until the next global configuration update.
func (c *ContextLogger) ChangeLevel(newLevel LogLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = newLevel
	c.zeroLogger = c.zeroLogger.Level(toZeroLevel(newLevel))
}

func (c *ContextLogger) GetLevel() LogLevel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

func toZeroLevel(lvl LogLevel) zerolog.Level {
	switch lvl {
	case NONE:
		return zerolog.Disabled
	case TRACE:
		return zerolog.TraceLevel
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		panic(fmt.Sprintf("unknown level: %d", lvl))
	}
}
