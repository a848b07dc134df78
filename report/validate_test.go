package report

import (
	"strings"
	"testing"

	"github.com/odconnect/receive-tracking-order/inventory"
	"github.com/odconnect/receive-tracking-order/media"
)

func validInput() Input {
	return Input{
		Branch:       "Siam Paragon",
		TrackingNo:   "TH123",
		Category:     inventory.CategoryAll,
		Date:         "2026-08-15",
		Evidence:     []media.Blob{{Name: "door.jpg", MIME: "image/jpeg", Data: []byte{0xff, 0xd8}}},
		SignerName:   "Somsak",
		SignerRole:   RoleBranchManager,
		Acknowledged: true,
		Signature:    "data:image/png;base64,abc",
	}
}

func testScope() []inventory.LineItem {
	return []inventory.LineItem{
		{ID: "1", Item: "Poster A2", Qty: 5, Category: inventory.CategoryBrand},
		{ID: "2", Item: "Shelf Talker", Qty: 3, Category: inventory.CategorySystem},
	}
}

func allChecked() map[string]bool {
	return map[string]bool{"1": true, "2": true}
}

func assertInvalid(t *testing.T, in Input, scope []inventory.LineItem, checked map[string]bool, wantSubstr string) {
	t.Helper()
	_, err := Build(in, scope, checked)
	if err == nil {
		t.Fatalf("expected validation error containing %q", wantSubstr)
	}
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(vErr.Reason, wantSubstr) {
		t.Fatalf("reason %q does not contain %q", vErr.Reason, wantSubstr)
	}
}

func TestBuildAllReceived(t *testing.T) {
	rep, err := Build(validInput(), testScope(), allChecked())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rep.Note != AllReceivedNote {
		t.Fatalf("note = %q", rep.Note)
	}
	if rep.MissingItems != "-" {
		t.Fatalf("missing = %q", rep.MissingItems)
	}
	if len(rep.ItemsSnapshot) != 2 || !rep.ItemsSnapshot[0].IsChecked {
		t.Fatalf("snapshot = %+v", rep.ItemsSnapshot)
	}
	if rep.TrackingNo != "TH123" {
		t.Fatalf("tracking = %q", rep.TrackingNo)
	}
}

func TestBuildPartialReceipt(t *testing.T) {
	in := validInput()
	in.Note = "Shelf talker box damaged in transit"

	rep, err := Build(in, testScope(), map[string]bool{"1": true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rep.Note != in.Note {
		t.Fatalf("operator note overwritten: %q", rep.Note)
	}
	if rep.MissingItems != "- Shelf Talker (Qty: 3)" {
		t.Fatalf("missing = %q", rep.MissingItems)
	}
	if rep.ItemsSnapshot[1].IsChecked {
		t.Fatalf("snapshot marks missing item as checked")
	}
}

func TestBuildValidationOrder(t *testing.T) {
	in := validInput()
	in.Branch = " "
	assertInvalid(t, in, testScope(), allChecked(), "branch")

	in = validInput()
	in.Date = ""
	assertInvalid(t, in, testScope(), allChecked(), "date")

	in = validInput()
	in.Evidence = nil
	assertInvalid(t, in, testScope(), allChecked(), "photo or video")

	// Nothing checked, no note.
	assertInvalid(t, validInput(), testScope(), map[string]bool{}, "no items are marked as received")

	// A note alone never waives the evidence requirement.
	in = validInput()
	in.Evidence = nil
	in.Note = "courier never arrived"
	assertInvalid(t, in, testScope(), map[string]bool{}, "photo or video")

	// Defect mode without a note.
	in = validInput()
	in.DefectMode = true
	assertInvalid(t, in, testScope(), allChecked(), "defect report")

	in = validInput()
	in.SignerName = ""
	assertInvalid(t, in, testScope(), allChecked(), "signer name")

	in = validInput()
	in.SignerRole = "Visitor"
	assertInvalid(t, in, testScope(), allChecked(), "signer role")

	in = validInput()
	in.Acknowledged = false
	assertInvalid(t, in, testScope(), allChecked(), "acknowledge")

	in = validInput()
	in.Signature = ""
	assertInvalid(t, in, testScope(), allChecked(), "signature")
}

func TestBuildEvidenceBatchRules(t *testing.T) {
	in := validInput()
	in.Evidence = []media.Blob{
		{Name: "a.jpg", MIME: "image/jpeg", Data: []byte{1, 2}},
		{Name: "a.jpg", MIME: "image/jpeg", Data: []byte{1, 2}},
	}
	assertInvalid(t, in, testScope(), allChecked(), "attached twice")
}

func TestBuildBlankTrackingBecomesDash(t *testing.T) {
	in := validInput()
	in.TrackingNo = "  "
	rep, err := Build(in, testScope(), allChecked())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rep.TrackingNo != "-" {
		t.Fatalf("tracking = %q", rep.TrackingNo)
	}
}

func TestBuildDefectWithDetails(t *testing.T) {
	in := validInput()
	in.DefectMode = true
	in.Note = "Poster corner torn"

	rep, err := Build(in, testScope(), allChecked())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rep.Note != "Poster corner torn" {
		t.Fatalf("note = %q", rep.Note)
	}
}

func TestScopeIDs(t *testing.T) {
	rep, err := Build(validInput(), testScope(), allChecked())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ids := rep.ScopeIDs()
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Fatalf("scope ids = %v", ids)
	}
}
