package subjects

import (
	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/models"
)

type TreatmentCmd struct {
	Add     TreatmentAddCmd     `cmd:"" help:"Add a treatment to a subject."`
	List    TreatmentListCmd    `cmd:"" help:"List a subject's treatments."`
	Archive TreatmentArchiveCmd `cmd:"" help:"Archive a treatment. Its history is kept."`
}

type TreatmentAddCmd struct {
	Subject string `arg:"" help:"Subject ID."`
	Type    string `arg:"" help:"Treatment type key (e.g. weight-loss)."`
	Label   string `help:"Display label."`
	Kind    string `help:"Treatment kind: daily-pill, injection or topical." default:"daily-pill"`
}

func (c *TreatmentAddCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseTreatmentKind(c.Kind)
	if err != nil {
		return err
	}
	treatment := models.Treatment{
		SubjectID: c.Subject,
		Type:      c.Type,
		Label:     c.Label,
		Kind:      kind,
	}
	if err := treatment.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddTreatment(ctx.Context(), treatment); err != nil {
		return err
	}

	ctx.Printf("Added treatment %s (%s) for %s\n", treatment.Type, treatment.Kind, treatment.SubjectID)
	return nil
}

type TreatmentListCmd struct {
	Subject  string `arg:"" help:"Subject ID."`
	Archived bool   `help:"Include archived treatments."`
}

func (c *TreatmentListCmd) Run(ctx *cli.Context) error {
	treatments, err := ctx.Tracker.Treatments(ctx.Context(), c.Subject, c.Archived)
	if err != nil {
		return err
	}
	if len(treatments) == 0 {
		ctx.Printf("No treatments found for %s.\n", c.Subject)
		return nil
	}

	for _, t := range treatments {
		status := ""
		if t.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		ctx.Printf("%s  %s  %s%s\n", t.Type, t.Kind, t.DisplayName(), status)
	}
	return nil
}

type TreatmentArchiveCmd struct {
	Subject string `arg:"" help:"Subject ID."`
	Type    string `arg:"" help:"Treatment type key."`
}

func (c *TreatmentArchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ArchiveTreatment(ctx.Context(), c.Subject, c.Type); err != nil {
		return err
	}
	ctx.Printf("Archived treatment %s for %s\n", c.Type, c.Subject)
	return nil
}
