// Package format renders invoice numbers from a configured template.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTemplate is used when no numbering format is configured.
	DefaultTemplate = "INV-YYYYMM"

	periodToken = "YYYYMM"
	seqWidth    = 4
)

// BuildSeries substitutes the YYYYMM token with the invoice date's
// year and month, producing the series prefix all numbers of that
// period share (e.g. "INV-YYYYMM" + 2025-01 -> "INV-202501").
//
// The period comes from the invoice date, not the wall clock: a
// back-dated invoice joins that month's series. A template without
// the token gets the period appended so numbering still rolls over
// monthly.
func BuildSeries(template string, date time.Time) (string, error) {
	trimmed := strings.TrimSpace(template)
	if trimmed == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}

	period := date.Format("200601")
	if strings.Contains(trimmed, periodToken) {
		return strings.ReplaceAll(trimmed, periodToken, period), nil
	}
	return trimmed + "-" + period, nil
}

// FormatNumber renders the full invoice number for a series and a
// 1-based sequence.
func FormatNumber(series string, seq int64) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}
	return fmt.Sprintf("%s-%0*d", series, seqWidth, seq), nil
}

// ParseSequence extracts the sequence from an invoice number that
// belongs to the given series. Returns false when the number is not
// part of the series.
func ParseSequence(invoiceNo, series string) (int64, bool) {
	rest, ok := strings.CutPrefix(invoiceNo, series+"-")
	if !ok {
		return 0, false
	}
	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}
