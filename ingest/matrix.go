package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/inventory"
)

// The export does not pin the header row, so we look for a row holding
// one of these always-present branches.
var matrixAnchors = []string{"Head Office", "Central World", "Siam Paragon"}

// Administrative column labels that must never register as branches.
var matrixExcluded = []string{"Total", "Tracking", "List", "No.", "Item", "Unit"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseMatrix parses a branch-as-column manifest sheet.
//
// It returns the accepted line items plus the branch labels taken from
// the header; the matrix sheets are authoritative for branch identity and
// the caller merges the returned sets across categories. A sheet without
// a recognizable header yields an empty result, which the load cycle
// treats as a failed source.
func ParseMatrix(text, category string) ([]inventory.LineItem, *branch.Set) {
	branches := branch.NewSet()
	if strings.TrimSpace(text) == "" {
		return nil, branches
	}

	rows := Rows(text)
	headerIndex := -1
	type branchColumn struct {
		idx  int
		name string
	}
	var columns []branchColumn

	for i, row := range rows {
		if !rowHasAnchor(row) {
			continue
		}
		headerIndex = i
		for col, raw := range row {
			name := strings.TrimSpace(raw)
			if name == "" || isExcludedColumn(name) {
				continue
			}
			branches.Add(name)
			columns = append(columns, branchColumn{idx: col, name: name})
		}
		break
	}
	if headerIndex == -1 {
		return nil, branches
	}

	var items []inventory.LineItem
	for _, row := range rows[headerIndex+1:] {
		if len(row) < 5 {
			continue
		}
		itemName := strings.TrimSpace(cell(row, 1))
		if itemName == "" {
			itemName = strings.TrimSpace(cell(row, 0))
		}
		if itemName == "" || strings.HasPrefix(itemName, "Total") || strings.Contains(strings.ToLower(itemName), "tracking") {
			continue
		}

		for _, col := range columns {
			qty := parseQty(cell(row, col.idx))
			if qty <= 0 {
				continue
			}
			items = append(items, inventory.LineItem{
				ID:        itemID(col.name + "_" + itemName),
				Branch:    col.name,
				BranchKey: branch.Key(col.name),
				Category:  category,
				Item:      itemName,
				Qty:       qty,
			})
		}
	}
	return items, branches
}

func rowHasAnchor(row []string) bool {
	for _, field := range row {
		for _, anchor := range matrixAnchors {
			if strings.Contains(field, anchor) {
				return true
			}
		}
	}
	return false
}

func isExcludedColumn(name string) bool {
	for _, ex := range matrixExcluded {
		if strings.Contains(name, ex) {
			return true
		}
	}
	return false
}

// parseQty reads an integer quantity, tolerating thousands separators.
func parseQty(raw string) int {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func itemID(raw string) string {
	return whitespaceRun.ReplaceAllString(raw, "_")
}
