package config

import (
	"fmt"
	"time"
)

const (
	DEBUG_LEVEL = iota - 1
	INFO_LEVEL
	WARN_LEVEL
	ERROR_LEVEL
)

type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return fmt.Errorf("invalid LOG_LEVEL %d, must be between %d and %d", c.Level, DEBUG_LEVEL, ERROR_LEVEL)
	}
	if c.TimeFormat == "" {
		return fmt.Errorf("LOG_TIME_FORMAT must not be empty")
	}
	if _, err := time.Parse(c.TimeFormat, time.Now().Format(c.TimeFormat)); err != nil {
		return fmt.Errorf("invalid LOG_TIME_FORMAT %q: %w", c.TimeFormat, err)
	}
	return nil
}
