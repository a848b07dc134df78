package ingest

import (
	"regexp"
	"strings"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/inventory"
)

// headerScanLimit caps the search for the pivot header row.
const headerScanLimit = 50

// shopSentinel marks the branch-label header row in the pivot sheet.
const shopSentinel = "Shop"

// equipmentDataStart is the first item column; the leading columns hold
// order metadata.
const equipmentDataStart = 3

var quantityPrefix = regexp.MustCompile(`(?i)^Quantity\s*`)

// ParseEquipment parses the pivoted equipment manifest.
//
// The sheet repeats a (branch, item) pair once per shipment line, so
// quantities for the same pair are summed. Branch cells are aligned
// against the ground-truth set from the matrix sheets; rows that resolve
// to no known branch are dropped. A sheet without the "Shop" header row
// yields nil, which the load cycle treats as a failed source.
func ParseEquipment(text, category string, known *branch.Set) []inventory.LineItem {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	rows := Rows(text)
	headerIndex := -1
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		if strings.TrimSpace(cell(rows[i], 1)) == shopSentinel {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 || headerIndex+1 >= len(rows) {
		return nil
	}
	itemHeaders := rows[headerIndex+1]

	var (
		order []string
		byKey = map[string]*inventory.LineItem{}
	)
	for _, row := range rows[headerIndex+2:] {
		if len(row) < 2 {
			continue
		}
		rawBranch := strings.TrimSpace(cell(row, 1))
		if rawBranch == "" {
			continue
		}
		label, ok := branch.Resolve(rawBranch, known)
		if !ok {
			continue
		}

		for col := equipmentDataStart; col < len(itemHeaders); col++ {
			header := strings.TrimSpace(itemHeaders[col])
			if header == "" || strings.Contains(strings.ToLower(header), "total") {
				continue
			}
			item := strings.TrimSpace(quantityPrefix.ReplaceAllString(header, ""))
			qty := parseQty(cell(row, col))
			if qty <= 0 {
				continue
			}

			key := label + "|" + item
			if existing, ok := byKey[key]; ok {
				existing.Qty += qty
				continue
			}
			byKey[key] = &inventory.LineItem{
				ID:        itemID("EQ_" + branch.Key(label) + "_" + item),
				Branch:    label,
				BranchKey: branch.Key(label),
				Category:  category,
				Item:      item,
				Qty:       qty,
			}
			order = append(order, key)
		}
	}

	items := make([]inventory.LineItem, 0, len(order))
	for _, key := range order {
		items = append(items, *byKey[key])
	}
	return items
}
