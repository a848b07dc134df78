package ingest

import (
	"testing"

	"github.com/odconnect/receive-tracking-order/inventory"
)

func TestNormalizeTracking(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", inventory.PendingTracking},
		{"-", inventory.PendingTracking},
		{"  ", inventory.PendingTracking},
		{"TH123", "TH123"},
		{" TH123 ", "TH123"},
	}
	for _, tc := range cases {
		if got := NormalizeTracking(tc.in); got != tc.want {
			t.Fatalf("NormalizeTracking(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrdersFromShipmentItems(t *testing.T) {
	rows := []ShipmentItem{
		{OrderNo: "PO-1", Branch: "Head Office", TrackingNo: "TH1", Item: "Poster", Qty: 2, CreatedAt: "2026-08-01"},
		{OrderNo: "PO-1", Branch: "Head Office", TrackingNo: "TH1", Item: "Banner", Qty: 1, CreatedAt: "2026-08-01"},
		{OrderNo: "PO-2", Branch: "Head Office (Equipment)", TrackingNo: "-", Item: "Basket", Qty: 4, CreatedAt: "2026-08-02"},
		{OrderNo: "", Branch: "Head Office", Item: "Ghost", Qty: 5},
		{OrderNo: "PO-1", Branch: "Head Office", Item: "Zero", Qty: 0},
	}

	orders := OrdersFromShipmentItems(rows)
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2: %+v", len(orders), orders)
	}

	first := orders[0]
	if first.OrderNo != "PO-1" || first.TrackingNo != "TH1" || len(first.Items) != 2 {
		t.Fatalf("first order = %+v", first)
	}
	if first.Items[0].ID != "PO-1_Poster" || first.Items[0].Category != string(inventory.KindPOP) {
		t.Fatalf("first item = %+v", first.Items[0])
	}

	second := orders[1]
	if second.TrackingNo != inventory.PendingTracking {
		t.Fatalf("placeholder tracking not normalized: %+v", second)
	}
	if second.Items[0].Category != inventory.CategoryEquipment {
		t.Fatalf("equipment branch not categorized: %+v", second.Items[0])
	}
	if second.Items[0].BranchKey != "head office" {
		t.Fatalf("branch key kept qualifier: %+v", second.Items[0])
	}
}
