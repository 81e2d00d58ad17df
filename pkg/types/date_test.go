package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(1985, time.December, 10)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"1985-12-10"` {
		t.Errorf("expected quoted date, got %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("expected %v back, got %v", d, back)
	}
}

func TestDateJSONNull(t *testing.T) {
	var d Date
	b, _ := json.Marshal(d)
	if string(b) != "null" {
		t.Errorf("zero date must marshal as null, got %s", b)
	}

	var back Date
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !back.IsZero() {
		t.Errorf("expected zero date, got %v", back)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", d)
	}

	if _, err := ParseDate("02/29/2024"); err == nil {
		t.Error("expected rejection of non-ISO format")
	}
	if _, err := ParseDate("2023-02-29"); err == nil {
		t.Error("expected rejection of invalid calendar date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2020-06-01" {
		t.Errorf("expected 2020-06-01, got %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Error("scanning nil must zero the date")
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}
