package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/adhere/internal/adherence"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty is local", timezone: ""},
		{name: "Local", timezone: "Local"},
		{name: "UTC", timezone: "UTC"},
		{name: "IANA name", timezone: "America/New_York"},
		{name: "invalid", timezone: "Invalid/Zone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestTodayIn(t *testing.T) {
	// 2026-03-01 23:30 UTC is already 2026-03-02 in Tokyo and still 2026-03-01 in New York
	now := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		timezone string
		want     string
	}{
		{"UTC", "2026-03-01"},
		{"Asia/Tokyo", "2026-03-02"},
		{"America/New_York", "2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			got, err := TodayIn(now, tt.timezone)
			if err != nil {
				t.Fatalf("TodayIn() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("TodayIn(%s) = %s, want %s", tt.timezone, got, tt.want)
			}
		})
	}

	if _, err := TodayIn(now, "Mars/Base"); err == nil {
		t.Error("TodayIn with invalid timezone should fail")
	}
}

func TestResolveDay(t *testing.T) {
	today := adherence.MustParseDate("2026-01-15")

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "", want: "2026-01-15"},
		{arg: "today", want: "2026-01-15"},
		{arg: "Yesterday", want: "2026-01-14"},
		{arg: "2026-01-01", want: "2026-01-01"},
		{arg: "01/01/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ResolveDay(tt.arg, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDay(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ResolveDay(%q) = %s, want %s", tt.arg, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Europe/London") {
		t.Error("ValidateTimezone(Europe/London) = false")
	}
	if !ValidateTimezone("") {
		t.Error("ValidateTimezone(\"\") = false")
	}
	if ValidateTimezone("Nowhere/Land") {
		t.Error("ValidateTimezone(Nowhere/Land) = true")
	}
}
