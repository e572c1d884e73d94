package main

import "github.com/rgehrsitz/rptax/internal/config"

func configLogging(level, format string) config.LoggingConfig {
	return config.LoggingConfig{Level: level, Format: format}
}
