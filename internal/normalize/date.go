package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts seen across the source workbooks and the staging table.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// excelEpoch is day zero of the 1900 date system used by the operator
// spreadsheets.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// CleanDate parses a raw date cell. It accepts ISO and day-first
// layouts plus bare Excel serial day numbers. Returns nil when nothing
// parses; the record is still normalized and the loader rejects it
// later under the missing-date reason.
func CleanDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	// Excel serial dates: plausible window covers 1981..2064.
	if serial, err := strconv.Atoi(s); err == nil && serial > 29500 && serial < 60000 {
		t := excelEpoch.AddDate(0, 0, serial)
		return &t
	}

	return nil
}
