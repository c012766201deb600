package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/adhere/internal/cache"
	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/cli/backups"
	"github.com/julianstephens/adhere/internal/cli/checkins"
	"github.com/julianstephens/adhere/internal/cli/subjects"
	"github.com/julianstephens/adhere/internal/cli/system"
	"github.com/julianstephens/adhere/internal/config"
	"github.com/julianstephens/adhere/internal/constants"
	"github.com/julianstephens/adhere/internal/errors"
	"github.com/julianstephens/adhere/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" default:"~/.config/adhere/config.yaml"`
	Database string `help:"Override the database setting: a SQLite path, 'keyring', or a PostgreSQL connection string without a password."`
	Debug    bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize adhere storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI for a subject."`

	Checkin  checkins.CheckinCmd  `cmd:"" help:"Record whether a treatment was taken on a day."`
	Status   checkins.StatusCmd   `cmd:"" help:"Show streak and adherence."`
	Calendar checkins.CalendarCmd `cmd:"" help:"Show the adherence heatmap for a treatment."`
	Reset    checkins.ResetCmd    `cmd:"" help:"Delete every check-in of a subject."`

	Subject   subjects.SubjectCmd   `cmd:"" help:"Manage subjects."`
	Treatment subjects.TreatmentCmd `cmd:"" help:"Manage treatments."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	ConfigCmd struct {
		Show system.ConfigShowCmd `cmd:"" help:"Print the effective configuration." default:"1"`
		Init system.ConfigInitCmd `cmd:"" help:"Write the effective configuration to the config file."`
	} `cmd:"" name:"config" help:"Inspect or write the config file."`
}

// Commands that open the database themselves, or never touch it.
var noLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
	"config":  true,
}

// Commands that still work when the database setting cannot be resolved,
// e.g. 'keyring set' before anything is stored.
var storeOptional = map[string]bool{
	"doctor":  true,
	"keyring": true,
	"config":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Treatment adherence tracker: streaks, calendar heatmaps and adherence rates"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := strings.Fields(ctx.Command())[0]

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Database != "" {
		cfg.Database = config.ExpandHome(CLI.Database)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir(),
		Stderr:    command == "serve",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.OpenStore(cfg.Database)
	switch {
	case err != nil && storeOptional[command]:
		logger.Debug("Continuing without storage", "error", err)
	case err != nil:
		errors.Fatal(err)
	default:
		defer store.Close()
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(cfg, store, c)
	appCtx.ConfigPath = CLI.Config

	if !noLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}
