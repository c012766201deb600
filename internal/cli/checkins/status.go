package checkins

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/render"
	"github.com/julianstephens/adhere/internal/tracker"
)

func renderer(ctx *cli.Context, plain bool) *render.Renderer {
	if plain {
		return render.New(ctx.Out, true)
	}
	return render.Auto(ctx.Out)
}

func printJSON(ctx *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	ctx.Printf("%s\n", b)
	return nil
}

// StatusCmd prints the streak and adherence line for one treatment, or for
// every active treatment of the subject.
type StatusCmd struct {
	Subject   string `arg:"" help:"Subject ID."`
	Treatment string `arg:"" optional:"" help:"Treatment type key (default: all active treatments)."`
	JSON      bool   `name:"json" help:"Print the full summary as JSON."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if c.Treatment != "" {
		s, err := ctx.Tracker.Summary(ctx.Context(), c.Subject, c.Treatment)
		if err != nil {
			return err
		}
		if c.JSON {
			return printJSON(ctx, s)
		}
		ctx.Printf("%s: %s\n", c.Treatment, renderer(ctx, false).Status(s))
		return nil
	}

	entries, err := ctx.Tracker.Overview(ctx.Context(), c.Subject)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(ctx, entries)
	}
	if len(entries) == 0 {
		ctx.Printf("No active treatments for %s.\n", c.Subject)
		return nil
	}
	r := renderer(ctx, false)
	for _, e := range entries {
		ctx.Printf("%s: %s\n", e.Treatment.Type, r.Status(e.Summary))
	}
	return nil
}

// CalendarCmd draws the heatmap for one treatment.
type CalendarCmd struct {
	Subject   string `arg:"" help:"Subject ID."`
	Treatment string `arg:"" help:"Treatment type key."`
	Window    int    `help:"Window length in days, a multiple of 7 (default: window_days from the config)."`
	WeekStart string `help:"Weekday each row starts on, or 'window' to align rows to the window."`
	NoData    bool   `help:"Mark days without any record separately from missed days."`
	Plain     bool   `help:"Draw with ASCII glyphs and no colour."`
}

func (c *CalendarCmd) options(base adherence.Options) (adherence.Options, error) {
	opts := base
	if c.Window != 0 {
		opts.WindowDays = c.Window
	}
	if c.WeekStart != "" {
		ws, err := adherence.ParseWeekStart(c.WeekStart)
		if err != nil {
			return opts, err
		}
		opts.WeekStart = ws
	}
	if c.NoData {
		opts.DistinguishNoData = true
	}
	return opts, tracker.ValidateWindow(opts.WindowDays, true)
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	opts, err := c.options(ctx.Tracker.Options())
	if err != nil {
		return err
	}
	s, err := ctx.Tracker.SummaryWithOptions(ctx.Context(), c.Subject, c.Treatment, opts)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s · %s", c.Subject, c.Treatment)
	ctx.Printf("%s", renderer(ctx, c.Plain).Summary(title, s))
	return nil
}
