package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/migration"
	"github.com/julianstephens/adhere/internal/models"
	"github.com/julianstephens/adhere/internal/storage"
	"github.com/julianstephens/adhere/internal/utils"
)

// backupStaleAfter is how old the newest backup may be before doctor warns.
const backupStaleAfter = 7 * 24 * time.Hour

var errChecksFailed = errors.New("one or more health checks failed")

type schemaReporter interface {
	SchemaStatus() (migration.Status, error)
}

// cachePinger is implemented by caches backed by a server.
type cachePinger interface {
	Ping(ctx context.Context) error
}

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warn reports failures without failing the command
	warn bool
	// needsDB is skipped when the database is unreachable
	needsDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchema, needsDB: true},
	{name: "Check-in dates", run: checkCheckinDates, needsDB: true},
	{name: "Subject timezones", run: checkSubjectTimezones, needsDB: true},
	{name: "Configured timezone", run: checkConfigTimezone},
	{name: "Cache reachable", run: checkCache, warn: true},
	{name: "Backups present", run: checkBackups, warn: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	failed := false
	dbOK := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		failed, dbOK = true, false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbOK {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
	}

	ctx.Printf("\n")
	if failed {
		ctx.Printf("Diagnostics completed with errors.\n")
		return errChecksFailed
	}
	ctx.Printf("All diagnostics passed!\n")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no storage configured")
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	dbp, ok := ctx.Store.(storage.DBProvider)
	if !ok || dbp.GetDB() == nil {
		return errors.New("database connection is nil")
	}
	pingCtx, cancel := context.WithTimeout(ctx.Context(), 5*time.Second)
	defer cancel()
	return dbp.GetDB().PingContext(pingCtx)
}

func checkSchema(ctx *cli.Context) error {
	r, ok := ctx.Store.(schemaReporter)
	if !ok {
		return nil
	}
	st, err := r.SchemaStatus()
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("database at version %d, %d migration(s) pending (run 'adhere migrate')", st.Current, len(st.Pending))
	}
	return nil
}

// checkCheckinDates finds stored rows whose day no longer parses. The
// engine skips such rows, so they silently drop out of every summary.
func checkCheckinDates(ctx *cli.Context) error {
	bg := ctx.Context()
	subjects, err := ctx.Store.GetAllSubjects(bg)
	if err != nil {
		return err
	}

	bad := 0
	for _, s := range subjects {
		treatments, err := ctx.Store.GetTreatments(bg, s.ID, true)
		if err != nil {
			return err
		}
		for _, t := range treatments {
			rows, err := ctx.Store.GetCheckins(bg, s.ID, t.Type)
			if err != nil {
				return err
			}
			_, dropped := adherence.ParseRecords(models.RawRecords(rows))
			bad += len(dropped)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d check-in row(s) have unparseable days and are ignored", bad)
	}
	return nil
}

func checkSubjectTimezones(ctx *cli.Context) error {
	subjects, err := ctx.Store.GetAllSubjects(ctx.Context())
	if err != nil {
		return err
	}
	for _, s := range subjects {
		if s.Timezone == "" {
			continue
		}
		if !utils.ValidateTimezone(s.Timezone) {
			return fmt.Errorf("subject %s has unknown timezone %q", s.ID, s.Timezone)
		}
	}
	return nil
}

func checkConfigTimezone(ctx *cli.Context) error {
	if _, err := utils.TodayIn(time.Now(), ctx.Config.Timezone); err != nil {
		return err
	}
	return nil
}

// checkCache only warns: summaries are recomputed when the cache is down.
func checkCache(ctx *cli.Context) error {
	p, ok := ctx.Cache.(cachePinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx.Context()); err != nil {
		return fmt.Errorf("%s cache at %s: %w", ctx.Config.Cache.Backend, ctx.Config.Cache.Redis.Addr, err)
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	latest, ok, err := mgr.Latest()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no backups in %s (run 'adhere backup create')", mgr.BackupDir())
	}
	if age := time.Since(latest.Timestamp); age > backupStaleAfter {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

