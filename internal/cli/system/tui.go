package system

import (
	"os"

	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/render"
	"github.com/julianstephens/adhere/internal/tui"
)

type TuiCmd struct {
	Subject string `arg:"" help:"Subject ID."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSubject(ctx.Context(), c.Subject); err != nil {
		return err
	}

	// Back up once per session; toggling writes to the database
	ctx.PerformAutomaticBackup()

	return tui.Run(ctx.Tracker, c.Subject, render.Auto(os.Stdout))
}
