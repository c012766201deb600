package subjects

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/adhere/internal/cache"
	"github.com/julianstephens/adhere/internal/cli"
	"github.com/julianstephens/adhere/internal/config"
	"github.com/julianstephens/adhere/internal/storage"
	"github.com/julianstephens/adhere/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.Timezone = "UTC"

	store := sqlite.NewStore(filepath.Join(dir, "adhere.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("store.Init() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(cfg, store, cache.NewMemory())
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestSubjectAddAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&SubjectAddCmd{ID: "pat-001", Name: "Alex", Timezone: "Europe/London"}).Run(ctx); err != nil {
		t.Fatalf("subject add: %v", err)
	}
	if err := (&SubjectAddCmd{ID: "pat-002"}).Run(ctx); err != nil {
		t.Fatalf("subject add: %v", err)
	}

	err := (&SubjectAddCmd{ID: "pat-001"}).Run(ctx)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate add error = %v, want ErrAlreadyExists", err)
	}

	out.Reset()
	if err := (&SubjectListCmd{}).Run(ctx); err != nil {
		t.Fatalf("subject list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("subject list printed %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "pat-001 (Alex)  tz=Europe/London") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "pat-002  tz=UTC (default)") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestSubjectAddValidates(t *testing.T) {
	ctx, _ := setupTestContext(t)

	tests := []struct {
		name string
		cmd  SubjectAddCmd
	}{
		{name: "empty id", cmd: SubjectAddCmd{ID: "  "}},
		{name: "id with colon", cmd: SubjectAddCmd{ID: "pat:1"}},
		{name: "bad timezone", cmd: SubjectAddCmd{ID: "pat-003", Timezone: "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestSubjectListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&SubjectListCmd{}).Run(ctx); err != nil {
		t.Fatalf("subject list: %v", err)
	}
	if out.String() != "No subjects found.\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestTreatmentLifecycle(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&SubjectAddCmd{ID: "pat-001"}).Run(ctx); err != nil {
		t.Fatalf("subject add: %v", err)
	}

	if err := (&TreatmentAddCmd{Subject: "pat-001", Type: "weight-loss", Label: "GLP-1", Kind: "injection"}).Run(ctx); err != nil {
		t.Fatalf("treatment add: %v", err)
	}
	if err := (&TreatmentAddCmd{Subject: "pat-001", Type: "hair-loss", Kind: "daily-pill"}).Run(ctx); err != nil {
		t.Fatalf("treatment add: %v", err)
	}
	if err := (&TreatmentArchiveCmd{Subject: "pat-001", Type: "hair-loss"}).Run(ctx); err != nil {
		t.Fatalf("treatment archive: %v", err)
	}

	out.Reset()
	if err := (&TreatmentListCmd{Subject: "pat-001"}).Run(ctx); err != nil {
		t.Fatalf("treatment list: %v", err)
	}
	if got := out.String(); got != "weight-loss  injection  GLP-1\n" {
		t.Errorf("active list = %q", got)
	}

	out.Reset()
	if err := (&TreatmentListCmd{Subject: "pat-001", Archived: true}).Run(ctx); err != nil {
		t.Fatalf("treatment list --archived: %v", err)
	}
	if !strings.Contains(out.String(), "hair-loss  daily-pill  hair-loss [ARCHIVED]") {
		t.Errorf("archived list = %q", out.String())
	}
}

func TestTreatmentErrors(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&SubjectAddCmd{ID: "pat-001"}).Run(ctx); err != nil {
		t.Fatalf("subject add: %v", err)
	}

	tests := []struct {
		name     string
		run      func(*cli.Context) error
		notFound bool
	}{
		{
			name: "unknown kind",
			run:  (&TreatmentAddCmd{Subject: "pat-001", Type: "weight-loss", Kind: "inhaler"}).Run,
		},
		{
			name: "type with space",
			run:  (&TreatmentAddCmd{Subject: "pat-001", Type: "weight loss", Kind: "injection"}).Run,
		},
		{
			name:     "unknown subject",
			run:      (&TreatmentAddCmd{Subject: "pat-404", Type: "weight-loss", Kind: "injection"}).Run,
			notFound: true,
		},
		{
			name:     "archive unknown treatment",
			run:      (&TreatmentArchiveCmd{Subject: "pat-001", Type: "hair-loss"}).Run,
			notFound: true,
		},
		{
			name:     "list unknown subject",
			run:      (&TreatmentListCmd{Subject: "pat-404"}).Run,
			notFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(ctx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.notFound && !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}
