package storage

import (
	"net/url"
	"strings"
)

// IsPostgresConnString reports whether the database setting names a PostgreSQL
// database rather than a SQLite file path.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// (URL or key=value DSN) carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			// Unparseable URLs are treated as unsafe
			return true
		}
		if _, ok := u.User.Password(); ok {
			return true
		}
		for key := range u.Query() {
			if strings.EqualFold(key, "password") {
				return true
			}
		}
		return false
	}

	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}
