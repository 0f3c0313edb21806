package format

import (
	"testing"
	"time"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 15, 0, 0, 0, 0, time.UTC)
}

func TestBuildSeries(t *testing.T) {
	series, err := BuildSeries("INV-YYYYMM", date(2025, time.January))
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	if series != "INV-202501" {
		t.Fatalf("expected INV-202501, got %s", series)
	}
}

func TestBuildSeriesAppendsPeriodWhenTokenMissing(t *testing.T) {
	series, err := BuildSeries("HW", date(2025, time.December))
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	if series != "HW-202512" {
		t.Fatalf("expected HW-202512, got %s", series)
	}
}

func TestBuildSeriesUsesInvoiceDateNotClock(t *testing.T) {
	// A back-dated invoice joins the old month's series.
	series, err := BuildSeries("INV-YYYYMM", date(2024, time.March))
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	if series != "INV-202403" {
		t.Fatalf("expected INV-202403, got %s", series)
	}
}

func TestBuildSeriesEmptyTemplate(t *testing.T) {
	if _, err := BuildSeries("   ", date(2025, time.January)); err == nil {
		t.Fatal("expected error for empty template")
	}
}

func TestFormatNumber(t *testing.T) {
	no, err := FormatNumber("INV-202501", 1)
	if err != nil {
		t.Fatalf("format number: %v", err)
	}
	if no != "INV-202501-0001" {
		t.Fatalf("expected INV-202501-0001, got %s", no)
	}

	no, err = FormatNumber("INV-202501", 12345)
	if err != nil {
		t.Fatalf("format number: %v", err)
	}
	// Numbers past the pad width keep growing instead of wrapping.
	if no != "INV-202501-12345" {
		t.Fatalf("expected INV-202501-12345, got %s", no)
	}

	if _, err := FormatNumber("INV-202501", 0); err == nil {
		t.Fatal("expected error for non-positive sequence")
	}
}

func TestParseSequence(t *testing.T) {
	seq, ok := ParseSequence("INV-202501-0042", "INV-202501")
	if !ok || seq != 42 {
		t.Fatalf("expected 42, got %d ok=%v", seq, ok)
	}

	if _, ok := ParseSequence("INV-202502-0042", "INV-202501"); ok {
		t.Fatal("expected mismatched series to fail")
	}

	if _, ok := ParseSequence("INV-202501-abcd", "INV-202501"); ok {
		t.Fatal("expected non-numeric suffix to fail")
	}
}
