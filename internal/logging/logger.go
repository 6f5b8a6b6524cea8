package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/fitstride/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileMaxSizeMegabytes = 50

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(logOutput(params))
}

func setupSentry(params LoggerSetupParams) {
	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	}); err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))

	logrus.Infoln("sentry hook attached")
}

func logOutput(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Println("logging to STDOUT only")
		return os.Stdout
	}

	logFileName := params.LogFileName
	if !strings.HasSuffix(logFileName, ".log") {
		logFileName += ".log"
	}

	logFile := &lumberjack.Logger{
		Filename:  logFileName,
		MaxSize:   logFileMaxSizeMegabytes,
		LocalTime: false, // rotate on UTC time
		Compress:  true,
	}

	if params.LogToStdout {
		logrus.Println("logging to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, logFile)
	}
	return logFile
}

var logLevels = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"error": logrus.ErrorLevel,
	"fatal": logrus.FatalLevel,
	"info":  logrus.InfoLevel,
	"trace": logrus.TraceLevel,
	"warn":  logrus.WarnLevel,
}

// GetLevel maps a config level name to a logrus level,
// falling back to trace for unknown values.
func GetLevel(level string) logrus.Level {
	if l, ok := logLevels[strings.ToLower(level)]; ok {
		return l
	}
	return logrus.TraceLevel
}
