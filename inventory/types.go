// Package inventory holds the reconciled manifest model shared by the
// parsers, the checklist and the submission flow.
package inventory

// PendingTracking marks a shipment that has no tracking number assigned
// yet. Feed cells holding "-", "0" or nothing normalize to this bucket.
const PendingTracking = "PENDING"

// Kind distinguishes the two manifest halves.
type Kind string

const (
	KindPOP       Kind = "POP"
	KindEquipment Kind = "Equipment"
)

// Manifest categories as they appear in the source sheets.
const (
	CategoryBrand     = "RE-Brand"
	CategorySystem    = "RE-System"
	CategorySpecial   = "Special-POP"
	CategoryEquipment = "Equipment-Order"

	// CategoryAll is the view filter wildcard, not a real category.
	CategoryAll = "all"
)

// LineItem is one expected inventory line for one branch. Items are
// created by the parsers and never mutated; a re-ingest replaces the
// whole catalog.
type LineItem struct {
	ID        string `json:"id"`
	Branch    string `json:"branch"`
	BranchKey string `json:"branchKey"`
	Category  string `json:"category"`
	Item      string `json:"item"`
	Qty       int    `json:"qty"`
}

// TrackingAssociation ties a branch to one shipment tracking number.
type TrackingAssociation struct {
	Number    string `json:"number"`
	Kind      Kind   `json:"type"`
	Branch    string `json:"branch"`
	BranchKey string `json:"branchKey"`
}

// OrderRecord is one order from the structured shipment feed. Several
// orders may share a tracking number; orders without one sit in the
// PENDING bucket.
type OrderRecord struct {
	OrderNo    string     `json:"orderNo"`
	OrderDate  string     `json:"orderDate"`
	TrackingNo string     `json:"trackingNo"`
	Items      []LineItem `json:"items"`
}

// StockSource yields branch/tracking associations regardless of whether
// they came from the legacy tracking sheet or the structured orders feed.
type StockSource interface {
	Associations() []TrackingAssociation
}
