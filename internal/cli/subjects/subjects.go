package subjects

import (
	"fmt"
	"strings"

	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/models"
)

type SubjectCmd struct {
	Add  SubjectAddCmd  `cmd:"" help:"Add a subject."`
	List SubjectListCmd `cmd:"" help:"List subjects."`
}

type SubjectAddCmd struct {
	ID       string `arg:"" help:"Subject ID (e.g. pat-001)."`
	Name     string `help:"Display name."`
	Timezone string `help:"IANA timezone used to decide the subject's today (default: the configured timezone)."`
}

func (c *SubjectAddCmd) Run(ctx *cli.Context) error {
	subject := models.Subject{
		ID:       strings.TrimSpace(c.ID),
		Name:     c.Name,
		Timezone: c.Timezone,
	}
	if err := subject.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddSubject(ctx.Context(), subject); err != nil {
		return err
	}

	ctx.Printf("Added subject: %s\n", subject.ID)
	return nil
}

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(ctx *cli.Context) error {
	subjects, err := ctx.Store.GetAllSubjects(ctx.Context())
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		ctx.Printf("No subjects found.\n")
		return nil
	}

	for _, s := range subjects {
		tz := s.Timezone
		if tz == "" {
			tz = ctx.Config.Timezone + " (default)"
		}
		line := s.ID
		if s.Name != "" {
			line += fmt.Sprintf(" (%s)", s.Name)
		}
		ctx.Printf("%s  tz=%s  since %s\n", line, tz, ctx.FormatTime(s.CreatedAt))
	}
	return nil
}
