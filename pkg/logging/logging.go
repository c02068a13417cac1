// Package logging builds the zap logger srccat writes its diagnostics to. Logs always
// go to stderr so they never mix with files srccat produces.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger installed by Setup.
var Logger *zap.Logger

// Config returns the zap configuration for a run. Debug selects the human-readable
// development encoder at debug level; otherwise JSON at info level with ISO8601
// timestamps. Sampling is off: a run emits at most one line per collected file.
func Config(debug bool, appName, appVersion string) zap.Config {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}
	return cfg
}

// Setup builds the logger from Config and installs it as Logger and as zap's global.
// On failure Logger becomes a no-op logger and the build error is returned.
func Setup(debug bool, appName, appVersion string) error {
	built, err := Config(debug, appName, appVersion).Build()
	if err != nil {
		Logger = zap.NewNop()
		return err
	}

	Logger = built
	zap.ReplaceGlobals(Logger)
	return nil
}

// Get returns Logger, or a no-op logger when Setup has not run, e.g. when cobra
// rejects the command line before any hook fires.
func Get() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}
