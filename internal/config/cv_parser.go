package config

import (
	"os"
	"sync"
)

type CVParserConfig struct {
	APIKey string
	URL    string
}

var (
	cvParserConfig *CVParserConfig
	cvParserOnce   sync.Once
)

func LoadCVParserConfig() *CVParserConfig {
	cvParserOnce.Do(func() {
		cvParserConfig = &CVParserConfig{
			APIKey: os.Getenv("QUREOS_AUTH"),
			URL:    getEnv("CV_PARSER_URL", "https://apiv3aws.qureos.com/cv-parser/parse?model=4"),
		}
	})
	return cvParserConfig
}
