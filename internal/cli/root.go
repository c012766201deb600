package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/adhere/internal/backup"
	"github.com/julianstephens/adhere/internal/cache"
	"github.com/julianstephens/adhere/internal/config"
	"github.com/julianstephens/adhere/internal/constants"
	"github.com/julianstephens/adhere/internal/keyring"
	"github.com/julianstephens/adhere/internal/logger"
	"github.com/julianstephens/adhere/internal/storage"
	"github.com/julianstephens/adhere/internal/storage/postgres"
	"github.com/julianstephens/adhere/internal/storage/sqlite"
	"github.com/julianstephens/adhere/internal/tracker"
	"github.com/julianstephens/adhere/internal/utils"
)

// KeyringTarget as the database setting reads the connection string from
// ADHERE_DB_CONNECTION or the OS keyring.
const KeyringTarget = "keyring"

var ErrBackupUnsupported = errors.New("backups are only supported for SQLite storage")

type Context struct {
	Config *config.Config
	// ConfigPath is where the config file lives or would be written
	ConfigPath string

	Store   storage.Provider
	Cache   cache.Cache
	Tracker *tracker.Service

	Out io.Writer
	// Confirm asks a yes/no question; replaced in tests
	Confirm func(title, description string) (bool, error)
}

// NewContext wires the tracker from cfg. The store is not loaded.
func NewContext(cfg *config.Config, store storage.Provider, c cache.Cache, opts ...tracker.Option) *Context {
	base := []tracker.Option{
		tracker.WithWindow(cfg.WindowDays),
		tracker.WithWeekStart(cfg.WeekStartValue()),
		tracker.WithDefaultTimezone(cfg.Timezone),
		tracker.WithCacheTTL(cfg.Cache.TTL),
	}
	return &Context{
		Config:  cfg,
		Store:   store,
		Cache:   c,
		Tracker: tracker.New(store, c, append(base, opts...)...),
		Out:     os.Stdout,
		Confirm: confirm,
	}
}

func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// Context is the context storage calls run under. Commands are short-lived
// and are not cancelled.
func (c *Context) Context() context.Context {
	return context.Background()
}

func (c *Context) Printf(format string, args ...interface{}) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

// OpenStore picks the storage backend named by target: a PostgreSQL
// connection string, KeyringTarget, or a SQLite file path.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)

	if target == KeyringTarget {
		connStr, source, ok := keyring.ResolveConnectionString()
		if !ok {
			return nil, fmt.Errorf("database is set to %q but neither %s nor the OS keyring holds a connection string", KeyringTarget, constants.EnvDBConnection)
		}
		logger.Debug("Using PostgreSQL connection string", "source", source, "conn", keyring.MaskPassword(connStr))
		// Secrets stores may hold a password, so only the format is checked
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if storage.IsPostgresConnString(target) || strings.Contains(target, "host=") {
		if storage.HasEmbeddedCredentials(target) {
			return nil, fmt.Errorf("%w: store it with 'adhere keyring set', export ADHERE_DB_CONNECTION, or use .pgpass, then set database to %q",
				postgres.ErrEmbeddedCredentials, KeyringTarget)
		}
		if _, err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	}

	if target == "" {
		return nil, errors.New("no database configured")
	}
	return sqlite.NewStore(config.ExpandHome(target)), nil
}

// BackupManager returns a manager for the SQLite database, or
// ErrBackupUnsupported for other backends.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrBackupUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup backs up before a destructive operation. Failures
// are logged and returned as "" so the operation can still proceed.
func (c *Context) PerformAutomaticBackup() string {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Info("Skipping automatic backup", "reason", err)
		return ""
	}
	path, err := mgr.Create()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return ""
	}
	return path
}

// FormatTime renders stored timestamps in the configured timezone.
func (c *Context) FormatTime(t time.Time) string {
	if loc, err := utils.LoadLocation(c.Config.Timezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02 15:04")
}
