package logger

import (
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type globalFactory struct {
	sync.Mutex
	config               GlobalConfig
	loggers              map[string]*ContextLogger
	context              Context
	consoleTimeFormat    string
	callerSkipFrames     int // how many frames to skip to get real caller. Not meant to be changed by callers.
	packageNameResolver  *PackageNameResolver
	nonAlphaNumericRegex *regexp.Regexp
	initialized          bool
}

// Singleton for managing application wide logging.
var globalFactoryImpl *globalFactory

func init() {
	initializeGlobalFactory()
}

func initializeGlobalFactory() {
	globalFactoryImpl = &globalFactory{
		loggers:              make(map[string]*ContextLogger),
		context:              make(Context),
		consoleTimeFormat:    "15:04:05.000000",
		callerSkipFrames:     4, // This depends on the logger code, not meant to be changed by callers.
		packageNameResolver:  &PackageNameResolver{BasePackage: "alphabill-org/rbtree"},
		nonAlphaNumericRegex: regexp.MustCompile(`[^a-zA-Z0-9]`),
	}
}

// SetContext sets context for all loggers
func SetContext(key string, value interface{}) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	globalFactoryImpl.context[key] = value
	globalFactoryImpl.updateAllLoggers()
}

// ClearContext will clear a context key from all loggers
func ClearContext(key string) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	delete(globalFactoryImpl.context, key)
	globalFactoryImpl.updateAllLoggers()
}

// CreateForPackage creates logger named after the caller package.
func CreateForPackage() Logger {
	return Create(globalFactoryImpl.packageNameResolver.PackageName())
}

// Create creates custom named logger. Loggers are cached by name.
func Create(name string) Logger {
	return globalFactoryImpl.create(name)
}

// UpdateGlobalConfig updates global config and all loggers accordingly.
// When config.Writer is nil the current output is kept. A log file (*os.File other
// than stdout or stderr) is owned by the logger and closed once it is replaced.
func UpdateGlobalConfig(config GlobalConfig) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	globalFactoryImpl.updateFromConfig(config)
}

func (gf *globalFactory) create(name string) Logger {
	gf.Lock()
	defer gf.Unlock()

	if !gf.initialized {
		gf.updateFromConfig(defaultConfiguration())
	}
	normName := gf.normalizeName(name)
	if logger, ok := gf.loggers[normName]; ok {
		return logger
	}
	// Idea is that application/logging configuration can specify the log levels based on logger names.
	// These are arbitrary names, but it's expected each package will create one named after the package name.
	cl := &ContextLogger{}
	cl.update(gf.loggerLevel(normName), gf.context)
	gf.loggers[normName] = cl
	return cl
}

func (gf *globalFactory) updateFromConfig(config GlobalConfig) {
	if config.Writer == nil {
		config.Writer = gf.config.Writer
	}
	if config.PackageLevels == nil {
		config.PackageLevels = map[string]LogLevel{}
	}
	prevWriter := gf.config.Writer
	gf.config = config
	gf.updateOutputFormat()
	gf.updateTimeLocation(config.TimeLocation)
	gf.updateAllLoggers()
	gf.initialized = true
	closeLogFile(prevWriter, config.Writer)
}

// closeLogFile closes the previous output when it is a log file no longer in use.
func closeLogFile(prev, next io.Writer) {
	f, ok := prev.(*os.File)
	if !ok || f == os.Stdout || f == os.Stderr {
		return
	}
	if nf, ok := next.(*os.File); ok && nf == f {
		return
	}
	// nothing to report the error to, the log output is gone
	_ = f.Close()
}

func (gf *globalFactory) updateTimeLocation(location string) {
	if location == "" {
		location = defaultTimeLocation
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		// Fallback to default
		loc, _ = time.LoadLocation(defaultTimeLocation)
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}
}

// updateOutputFormat replaces the zerolog global logger every ContextLogger derives from.
func (gf *globalFactory) updateOutputFormat() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	// per logger levels decide what gets written
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var newGlobalLogger zerolog.Logger
	if gf.config.ConsoleFormat {
		newGlobalLogger = zerolog.New(zerolog.ConsoleWriter{
			Out:          gf.config.Writer,
			TimeFormat:   gf.consoleTimeFormat,
			FormatCaller: shortCaller,
		}).With().Timestamp().Logger()
	} else {
		newGlobalLogger = zerolog.New(gf.config.Writer).With().Timestamp().Logger()
	}
	if gf.config.ShowCaller {
		newGlobalLogger = newGlobalLogger.With().CallerWithSkipFrameCount(gf.callerSkipFrames).Logger()
	}
	log.Logger = newGlobalLogger
}

func (gf *globalFactory) updateAllLoggers() {
	for name, logger := range gf.loggers {
		logger.update(gf.loggerLevel(name), gf.context)
	}
}

func (gf *globalFactory) normalizeName(name string) string {
	return gf.nonAlphaNumericRegex.ReplaceAllString(name, "_")
}

func (gf *globalFactory) loggerLevel(loggerName string) LogLevel {
	if level, ok := gf.config.PackageLevels[loggerName]; ok {
		return level
	}
	return gf.config.DefaultLevel
}
