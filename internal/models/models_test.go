package models

import (
	"testing"
)

func TestSubject_Validate(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		wantErr bool
	}{
		{name: "valid", subject: Subject{ID: "pat-001", Timezone: "Europe/London"}},
		{name: "local timezone", subject: Subject{ID: "pat-001", Timezone: "Local"}},
		{name: "empty timezone", subject: Subject{ID: "pat-001"}},
		{name: "empty id", subject: Subject{ID: " "}, wantErr: true},
		{name: "id with slash", subject: Subject{ID: "a/b"}, wantErr: true},
		{name: "id with bracket", subject: Subject{ID: "a[b"}, wantErr: true},
		{name: "id with star", subject: Subject{ID: "pat-*"}, wantErr: true},
		{name: "id with backslash", subject: Subject{ID: `a\b`}, wantErr: true},
		{name: "invalid timezone", subject: Subject{ID: "pat-001", Timezone: "Mars/Olympus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.subject.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Subject.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTreatment_Validate(t *testing.T) {
	tests := []struct {
		name      string
		treatment Treatment
		wantErr   bool
	}{
		{name: "valid", treatment: Treatment{SubjectID: "pat-001", Type: "weight-loss", Kind: TreatmentInjection}},
		{name: "default kind", treatment: Treatment{SubjectID: "pat-001", Type: "hair-loss"}},
		{name: "unknown kind", treatment: Treatment{SubjectID: "pat-001", Type: "hair-loss", Kind: "inhaler"}, wantErr: true},
		{name: "missing subject", treatment: Treatment{Type: "hair-loss"}, wantErr: true},
		{name: "missing type", treatment: Treatment{SubjectID: "pat-001"}, wantErr: true},
		{name: "type with colon", treatment: Treatment{SubjectID: "pat-001", Type: "a:b"}, wantErr: true},
		{name: "type with question mark", treatment: Treatment{SubjectID: "pat-001", Type: "hair?"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.treatment.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Treatment.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTreatment_DisplayName(t *testing.T) {
	tr := Treatment{Type: "weight-loss"}
	if got := tr.DisplayName(); got != "weight-loss" {
		t.Errorf("DisplayName() = %q, want weight-loss", got)
	}
	tr.Label = "Weight loss injections"
	if got := tr.DisplayName(); got != "Weight loss injections" {
		t.Errorf("DisplayName() = %q, want label", got)
	}
}

func TestCheckin_Validate(t *testing.T) {
	tests := []struct {
		name    string
		checkin Checkin
		wantErr bool
	}{
		{name: "valid", checkin: Checkin{SubjectID: "pat-001", TreatmentType: "weight-loss", Day: "2026-01-15"}},
		{name: "bad day", checkin: Checkin{SubjectID: "pat-001", TreatmentType: "weight-loss", Day: "15/01/2026"}, wantErr: true},
		{name: "missing treatment", checkin: Checkin{SubjectID: "pat-001", Day: "2026-01-15"}, wantErr: true},
		{name: "missing subject", checkin: Checkin{TreatmentType: "weight-loss", Day: "2026-01-15"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.checkin.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Checkin.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRawRecords_PreservesOrder(t *testing.T) {
	raw := RawRecords([]Checkin{
		{Day: "2026-01-14", CheckedIn: true},
		{Day: "2026-01-15", CheckedIn: false},
	})
	if len(raw) != 2 || raw[0].Date != "2026-01-14" || raw[1].CheckedIn {
		t.Errorf("RawRecords() = %+v", raw)
	}
}
