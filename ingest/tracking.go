package ingest

import (
	"strings"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/inventory"
)

// ParseTracking parses the legacy tracking sheet: one row per branch,
// column 1 holds POP tracking values, column 2 equipment tracking values.
// A cell may hold several numbers separated by commas or embedded
// newlines. Rows whose branch resolves to nothing in the ground-truth set
// are dropped.
func ParseTracking(text string, known *branch.Set) []inventory.TrackingAssociation {
	rows := Rows(text)
	if len(rows) < 2 {
		return nil
	}

	var out []inventory.TrackingAssociation
	for _, row := range rows[1:] {
		rawBranch := strings.TrimSpace(cell(row, 0))
		if rawBranch == "" {
			continue
		}
		label, ok := branch.Resolve(rawBranch, known)
		if !ok {
			continue
		}
		key := branch.Key(label)

		for _, number := range splitTrackingCell(cell(row, 1)) {
			out = append(out, inventory.TrackingAssociation{
				Number: number, Kind: inventory.KindPOP, Branch: label, BranchKey: key,
			})
		}
		for _, number := range splitTrackingCell(cell(row, 2)) {
			out = append(out, inventory.TrackingAssociation{
				Number: number, Kind: inventory.KindEquipment, Branch: label, BranchKey: key,
			})
		}
	}
	return out
}

// splitTrackingCell breaks a cell into individual tracking values.
// "-", "0" and empty values mean "no tracking" and produce nothing.
func splitTrackingCell(cellText string) []string {
	trimmed := strings.TrimSpace(cellText)
	if trimmed == "" || trimmed == "-" || trimmed == "0" {
		return nil
	}
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" || v == "-" || v == "0" {
			continue
		}
		out = append(out, v)
	}
	return out
}
