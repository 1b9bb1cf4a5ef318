package config

import "time"

// Config is the full application configuration, populated from a YAML
// file with environment variable overrides.
type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Course   CourseConfig   `yaml:"course"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN         string        `yaml:"dsn" env:"DATABASE_DSN" env-required:"true"`
	MaxConns    int32         `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"10"`
	ConnTimeout time.Duration `yaml:"conn_timeout" env:"DATABASE_CONN_TIMEOUT" env-default:"5s"`
	Migrate     bool          `yaml:"migrate" env:"DATABASE_MIGRATE" env-default:"true"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET, POST, PUT, DELETE, OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type, X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age" env:"CORS_MAX_AGE" env-default:"300"`
}

// CourseConfig holds course-wide constants.
type CourseConfig struct {
	TotalLessons  int           `yaml:"total_lessons" env:"COURSE_TOTAL_LESSONS" env-default:"12"`
	MinNameLength int           `yaml:"min_name_length" env:"COURSE_MIN_NAME_LENGTH" env-default:"2"`
	SaveDebounce  time.Duration `yaml:"save_debounce" env:"COURSE_SAVE_DEBOUNCE" env-default:"1s"`
}
