package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// PageSize is the fixed number of items per page on paginated listings.
	PageSize int `mapstructure:"page_size" validate:"required,gt=0,lte=100"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost controls password hashing work factor. 0 selects the
	// bcrypt default.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// ReminderConfig controls the daily due-task reminder job.
type ReminderConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Time is the local wall-clock time the daily scan runs at, "HH:MM".
	Time string `mapstructure:"time" validate:"omitempty,datetime=15:04"`

	// Timezone is an IANA zone name the scan time is interpreted in.
	Timezone string `mapstructure:"timezone"`
}

// SMTPConfig contains outbound mail settings used by the reminder job.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,gt=0,lt=65536"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"omitempty,email"`
}
