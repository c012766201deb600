package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/adhere/internal/api"
	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/logger"
	"github.com/julianstephens/adhere/internal/storage"
)

type ServeCmd struct {
	Addr string `help:"Listen address (default: server.addr from the config)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	dbp, ok := ctx.Store.(storage.DBProvider)
	if !ok || dbp.GetDB() == nil {
		return fmt.Errorf("storage backend %T is not loaded", ctx.Store)
	}

	cfg := ctx.Config.Server
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting API server", "addr", cfg.Addr, "storage", ctx.Store.GetConfigPath(), "mode", cfg.Mode)
	srv := api.NewServer(cfg.Addr, api.NewRouter(ctx.Tracker, dbp.GetDB(), cfg))
	return srv.Run(runCtx)
}
