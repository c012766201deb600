package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/config"
	"github.com/julianstephens/adhere/internal/keyring"
)

// ConfigShowCmd prints the effective configuration after file, env and
// flag overrides.
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	source := cfg.Path()
	if source == "" {
		source = "(defaults, no file at " + ctx.ConfigPath + ")"
	}

	ctx.Printf("Config file:  %s\n", source)
	ctx.Printf("  database:     %s\n", keyring.MaskPassword(cfg.Database))
	ctx.Printf("  window_days:  %d\n", cfg.WindowDays)
	ctx.Printf("  week_start:   %s\n", cfg.WeekStart)
	ctx.Printf("  timezone:     %s\n", cfg.Timezone)
	ctx.Printf("  debug:        %v\n", cfg.Debug)
	ctx.Printf("\nServer:\n")
	ctx.Printf("  addr:                  %s\n", cfg.Server.Addr)
	ctx.Printf("  mode:                  %s\n", cfg.Server.Mode)
	ctx.Printf("  rate_limit_per_minute: %d\n", cfg.Server.RateLimitPerMinute)
	origins := "*"
	if len(cfg.Server.AllowedOrigins) > 0 {
		origins = strings.Join(cfg.Server.AllowedOrigins, ", ")
	}
	ctx.Printf("  allowed_origins:       %s\n", origins)
	ctx.Printf("\nCache:\n")
	ctx.Printf("  backend: %s\n", cfg.Cache.Backend)
	ctx.Printf("  ttl:     %s\n", cfg.Cache.TTL)
	if cfg.Cache.Backend == "redis" {
		ctx.Printf("  redis:   %s (db %d)\n", cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB)
	}
	return nil
}

// ConfigInitCmd writes the effective configuration to the config file.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *ConfigInitCmd) Run(ctx *cli.Context) error {
	path := ctx.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, ctx.Config); err != nil {
		return err
	}
	ctx.Printf("✓ Wrote config to %s\n", path)
	return nil
}
