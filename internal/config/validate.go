package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks invariants that tags alone cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("database.max_conns must be positive: %d", c.Database.MaxConns))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text: %q", c.Log.Format))
	}
	if c.Course.TotalLessons <= 0 {
		errs = append(errs, fmt.Errorf("course.total_lessons must be positive: %d", c.Course.TotalLessons))
	}
	if c.Course.MinNameLength < 1 {
		errs = append(errs, fmt.Errorf("course.min_name_length must be at least 1: %d", c.Course.MinNameLength))
	}
	if c.Course.SaveDebounce <= 0 {
		errs = append(errs, fmt.Errorf("course.save_debounce must be positive: %s", c.Course.SaveDebounce))
	}

	return errors.Join(errs...)
}
