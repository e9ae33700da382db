package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the global logrus logger. With no file name, logs go to
// stderr so they never interleave with command output on stdout.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0o755); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.Errorf("create log dir: %s", err)
		return
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}

	if params.LogToStdout {
		logrus.SetOutput(NewCombinedWriter(os.Stderr, lumberJackLogger))
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
