package report

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/odconnect/receive-tracking-order/infrastructure/sqlite"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func sampleReport(branch, date string) *Report {
	return &Report{
		Branch:     branch,
		TrackingNo: "TH123",
		Category:   "all",
		Date:       date,
		Note:       AllReceivedNote,
		ItemsSnapshot: []SnapshotItem{
			{ID: "1", Item: "Poster A2", Qty: 5, Category: "RE-Brand", IsChecked: true},
		},
		MissingItems: "-",
		SignerName:   "Somsak",
		SignerRole:   RoleBranchManager,
	}
}

func TestSaveAndListLogs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := SaveLog(ctx, db, sampleReport("Head Office", "2026-08-14"), 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveLog(ctx, db, sampleReport("Head Office", "2026-08-15"), 2); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveLog(ctx, db, sampleReport("Central World", "2026-08-15"), 1); err != nil {
		t.Fatalf("save: %v", err)
	}

	logs, err := ListLogs(ctx, db, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("logs = %d", len(logs))
	}
	// Newest first.
	if logs[0].Branch != "Central World" {
		t.Fatalf("first log = %+v", logs[0])
	}
	if logs[0].ItemsJSON == "" || logs[0].SignerName != "Somsak" {
		t.Fatalf("log columns = %+v", logs[0])
	}

	logs, err = ListLogs(ctx, db, "head office (Equipment)", "")
	if err != nil {
		t.Fatalf("list by branch: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("branch-filtered logs = %d", len(logs))
	}

	logs, err = ListLogs(ctx, db, "Head Office", "2026-08-15")
	if err != nil {
		t.Fatalf("list by branch and date: %v", err)
	}
	if len(logs) != 1 || logs[0].EvidenceCount != 2 {
		t.Fatalf("filtered logs = %+v", logs)
	}
}

func TestWriteXLSX(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := SaveLog(ctx, db, sampleReport("Head Office", "2026-08-15"), 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	logs, err := ListLogs(ctx, db, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, logs); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	// XLSX is a zip container.
	if buf.Len() < 4 || buf.Bytes()[0] != 'P' || buf.Bytes()[1] != 'K' {
		t.Fatalf("output does not look like a spreadsheet")
	}
}

func TestRenderPDF(t *testing.T) {
	rep := sampleReport("Head Office", "2026-08-15")
	out, err := RenderPDF(rep, time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestBarcodePNGIsEmbeddable(t *testing.T) {
	raw, err := renderCode128PNG("TH123", 600, 120)
	if err != nil {
		t.Fatalf("render barcode: %v", err)
	}
	// gofpdf only embeds 8-bit PNGs; the scaled barcode must not stay
	// 16-bit grayscale.
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode barcode png: %v", err)
	}
	if cfg.ColorModel == color.Gray16Model || cfg.ColorModel == color.RGBA64Model {
		t.Fatalf("barcode png is 16-bit")
	}
}

func TestRenderPDFSkipsBarcodeForPlaceholderTracking(t *testing.T) {
	rep := sampleReport("Head Office", "2026-08-15")
	rep.TrackingNo = "-"
	if _, err := RenderPDF(rep, time.Now()); err != nil {
		t.Fatalf("render without tracking: %v", err)
	}

	if _, err := RenderPDF(nil, time.Now()); err == nil {
		t.Fatalf("nil report accepted")
	}
}
