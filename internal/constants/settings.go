package constants

const (
	// Config keys
	SettingDatabase           = "database"
	SettingWindowDays         = "window_days"
	SettingWeekStart          = "week_start"
	SettingTimezone           = "timezone"
	SettingDebug              = "debug"
	SettingServerAddr         = "server.addr"
	SettingServerMode         = "server.mode"
	SettingRateLimitPerMinute = "server.rate_limit_per_minute"
	SettingAllowedOrigins     = "server.allowed_origins"
	SettingCacheBackend       = "cache.backend"
	SettingCacheTTL           = "cache.ttl"
	SettingRedisAddr          = "cache.redis.addr"
	SettingRedisDB            = "cache.redis.db"
	SettingRedisPassword      = "cache.redis.password"

	// Default values
	DefaultWindowDays         = 84 // 12 weeks
	MaxWindowDays             = 7 * 104
	DefaultWeekStart          = "monday"
	DefaultTimezone           = "Local" // Use system local timezone by default
	DefaultServerAddr         = "127.0.0.1:8484"
	DefaultServerMode         = "release"
	DefaultRateLimitPerMinute = 120
	DefaultCacheBackend       = "memory"
	DefaultRedisAddr          = "127.0.0.1:6379"

	// Cache backends
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)
