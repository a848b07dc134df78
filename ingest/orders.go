package ingest

import (
	"strings"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/inventory"
)

// ShipmentItem is one row of the structured orders feed as the backend
// returns it from the getShipmentItems action.
type ShipmentItem struct {
	OrderNo    string `json:"orderNo"`
	Branch     string `json:"branch"`
	TrackingNo string `json:"trackingNo"`
	Item       string `json:"item"`
	Qty        int    `json:"qty"`
	CreatedAt  string `json:"createdAt"`
}

// NormalizeTracking maps missing or placeholder tracking values onto the
// PENDING sentinel.
func NormalizeTracking(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || v == "-" {
		return inventory.PendingTracking
	}
	return v
}

// OrdersFromShipmentItems groups feed rows into order records. Rows are
// grouped by (orderNo, branch) in feed order; each embedded item gets a
// branch key and a stable id derived from order and item. Zero-quantity
// rows are not materialized.
func OrdersFromShipmentItems(rows []ShipmentItem) []inventory.OrderRecord {
	var (
		order []string
		byNo  = map[string]*inventory.OrderRecord{}
	)
	for _, row := range rows {
		if strings.TrimSpace(row.OrderNo) == "" || row.Qty <= 0 {
			continue
		}
		groupKey := row.OrderNo + "|" + row.Branch
		rec, ok := byNo[groupKey]
		if !ok {
			rec = &inventory.OrderRecord{
				OrderNo:    row.OrderNo,
				OrderDate:  row.CreatedAt,
				TrackingNo: NormalizeTracking(row.TrackingNo),
			}
			byNo[groupKey] = rec
			order = append(order, groupKey)
		}
		// The feed carries no category of its own; the equipment
		// qualifier on the branch label is the only signal.
		category := string(inventory.KindPOP)
		if branch.IsEquipmentLabel(row.Branch) {
			category = inventory.CategoryEquipment
		}
		rec.Items = append(rec.Items, inventory.LineItem{
			ID:        itemID(row.OrderNo + "_" + row.Item),
			Branch:    row.Branch,
			BranchKey: branch.Key(row.Branch),
			Category:  category,
			Item:      row.Item,
			Qty:       row.Qty,
		})
	}

	out := make([]inventory.OrderRecord, 0, len(order))
	for _, key := range order {
		out = append(out, *byNo[key])
	}
	return out
}
