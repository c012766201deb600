package constants

import "time"

const (
	AppName            = "adhere"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/adhere"
	DefaultConfigPath  = "~/.config/adhere/adhere.db"
	DefaultConfigFile  = "~/.config/adhere/config.yaml"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EnvDBConnection holds a PostgreSQL connection string when the keyring is not used
	EnvDBConnection = "ADHERE_DB_CONNECTION"
	// EnvPrefix is the prefix for configuration overrides read from the environment
	EnvPrefix = "ADHERE"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "adhere-"
	BackupFileSuffix = ".db"

	// Cache constants
	CacheKeyPrefix  = "adhere:summary:"
	DefaultCacheTTL = 10 * time.Minute
)
