package checkins

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/adhere/internal/cli"
)

// ResetCmd deletes every check-in of a subject. Subjects and treatments stay.
type ResetCmd struct {
	Subject string `arg:"" help:"Subject ID."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSubject(ctx.Context(), c.Subject); err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(
			fmt.Sprintf("Reset all check-ins for %s?", c.Subject),
			"Streaks and adherence history will start from zero.",
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Printf("Reset cancelled.\n")
			return nil
		}
	}

	if path := ctx.PerformAutomaticBackup(); path != "" {
		ctx.Printf("Backup created: %s\n", filepath.Base(path))
	}

	n, err := ctx.Tracker.Reset(ctx.Context(), c.Subject)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Deleted %d check-in(s) for %s\n", n, c.Subject)
	return nil
}
