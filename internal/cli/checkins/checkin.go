package checkins

import (
	"github.com/julianstephens/adhere/internal/cli"
)

// CheckinCmd records a day's check-in. Repeating it for the same day
// replaces the earlier answer.
type CheckinCmd struct {
	Subject   string `arg:"" help:"Subject ID."`
	Treatment string `arg:"" help:"Treatment type key."`
	Date      string `help:"Day to record: today, yesterday or YYYY-MM-DD." default:"today"`
	Missed    bool   `help:"Record the day as not taken."`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	stored, err := ctx.Tracker.CheckIn(ctx.Context(), c.Subject, c.Treatment, c.Date, !c.Missed)
	if err != nil {
		return err
	}

	if stored.CheckedIn {
		ctx.Printf("✓ %s %s taken on %s\n", c.Subject, c.Treatment, stored.Day)
	} else {
		ctx.Printf("✗ %s %s missed on %s\n", c.Subject, c.Treatment, stored.Day)
	}

	s, err := ctx.Tracker.Summary(ctx.Context(), c.Subject, c.Treatment)
	if err != nil {
		return err
	}
	ctx.Printf("  %s\n", renderer(ctx, false).Status(s))
	return nil
}
