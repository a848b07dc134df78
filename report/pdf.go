package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"github.com/odconnect/receive-tracking-order/inventory"
)

// RenderPDF renders a confirmed receipt report as a printable A4 page:
// header, signer block, item table with received/missing status, the
// missing-items block, the note, and a code128 barcode of the tracking
// number when one is assigned.
func RenderPDF(rep *Report, generatedAt time.Time) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("no report to render")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Confirmed Receipt Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "POP Receive Tracking Order", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Confirmed Receipt Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(95, 6, "Branch: "+rep.Branch, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date Checked: "+rep.Date, "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Name: "+orDash(rep.SignerName), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Position: "+orDash(rep.SignerRole), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Tracking No: "+orDash(rep.TrackingNo), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(241, 245, 249)
	pdf.CellFormat(40, 7, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(100, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, it := range rep.ItemsSnapshot {
		status := "Missing"
		if it.IsChecked {
			status = "Received"
		}
		pdf.CellFormat(40, 6, it.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, 6, it.Item, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", it.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, status, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	if rep.MissingItems != "" && rep.MissingItems != "-" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Missing Items / Reported Issues", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, rep.MissingItems, "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Note", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, orDash(rep.Note), "", "L", false)
	pdf.Ln(4)

	if hasTracking(rep.TrackingNo) {
		barcodePNG, err := renderCode128PNG(rep.TrackingNo, 600, 120)
		if err != nil {
			return nil, err
		}
		opt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("tracking-barcode", opt, bytes.NewReader(barcodePNG))
		pdf.ImageOptions("tracking-barcode", 65, pdf.GetY(), 80, 16, false, opt, 0, "")
		pdf.SetY(pdf.GetY() + 18)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, rep.TrackingNo, "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 6, "Document generated on "+generatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return out.Bytes(), nil
}

func hasTracking(no string) bool {
	return no != "" && no != "-" && no != inventory.PendingTracking
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("encode barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	var buf bytes.Buffer
	// The scaled barcode is 16-bit grayscale, which gofpdf cannot embed.
	if err := png.Encode(&buf, toNRGBA(scaled)); err != nil {
		return nil, fmt.Errorf("encode barcode png: %w", err)
	}
	return buf.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
