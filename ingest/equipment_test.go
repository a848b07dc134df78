package ingest

import (
	"strings"
	"testing"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/inventory"
)

func equipmentKnown() *branch.Set {
	s := branch.NewSet()
	s.Add("Head Office")
	s.Add("Central World")
	return s
}

const equipmentSheet = `Equipment order export,,,,,
,Shop,Order Date,,,
,,,Quantity Basket,Quantity Trolley,Total
1,Head Office,2026-08-01,3,1,4
2,Head Office,2026-08-02,2,0,2
3,Central  World,2026-08-02,0,5,5
4,Icon Siam,2026-08-02,9,9,18
`

func TestParseEquipment(t *testing.T) {
	items := ParseEquipment(equipmentSheet, inventory.CategoryEquipment, equipmentKnown())
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3: %+v", len(items), items)
	}

	// Duplicate (branch, item) rows sum.
	first := items[0]
	if first.Branch != "Head Office" || first.Item != "Basket" || first.Qty != 5 {
		t.Fatalf("first item = %+v", first)
	}
	if first.ID != "EQ_head_office_Basket" {
		t.Fatalf("first item id = %q", first.ID)
	}

	if items[1].Item != "Trolley" || items[1].Qty != 1 {
		t.Fatalf("second item = %+v", items[1])
	}

	// The sloppy "Central  World" spelling resolves onto the known label.
	third := items[2]
	if third.Branch != "Central World" || third.Item != "Trolley" || third.Qty != 5 {
		t.Fatalf("third item = %+v", third)
	}
}

func TestParseEquipmentUnknownBranchDropped(t *testing.T) {
	items := ParseEquipment(equipmentSheet, inventory.CategoryEquipment, equipmentKnown())
	for _, it := range items {
		if it.Branch == "Icon Siam" {
			t.Fatalf("unknown branch survived: %+v", it)
		}
	}
}

func TestParseEquipmentMissingHeader(t *testing.T) {
	sheet := strings.Repeat("a,b,c\n", 60)
	if items := ParseEquipment(sheet, inventory.CategoryEquipment, equipmentKnown()); items != nil {
		t.Fatalf("expected nil for missing header, got %+v", items)
	}
	if items := ParseEquipment("", inventory.CategoryEquipment, equipmentKnown()); items != nil {
		t.Fatalf("expected nil for empty sheet, got %+v", items)
	}
}
