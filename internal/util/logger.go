package util

import (
	"os"
	"sync"

	"github.com/fadilmartias/ai-resume/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// GetLogger returns the process-wide logger configured from the app config.
func GetLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		appConfig := config.LoadAppConfig()
		logger = logrus.New()
		logger.SetOutput(os.Stdout)

		if appConfig.IsProduction() {
			logger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}

		level, err := logrus.ParseLevel(appConfig.LogLevel)
		if err != nil {
			logger.Warnf("invalid LOG_LEVEL %q, falling back to info", appConfig.LogLevel)
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
	})
	return logger
}
