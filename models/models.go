package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ReportLog is the local journal row for one dispatched receipt report.
// The backend owns persisted history; this journal only records what left
// the engine, so exports and audits work without a backend round trip.
type ReportLog struct {
	bun.BaseModel `bun:"table:report_logs,alias:rl"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Branch        string    `bun:"branch,notnull"`
	BranchKey     string    `bun:"branch_key,notnull"`
	TrackingNo    string    `bun:"tracking_no,notnull"`
	Category      string    `bun:"category,notnull"`
	ReportDate    string    `bun:"report_date,notnull"`
	Note          string    `bun:"note,notnull"`
	MissingItems  string    `bun:"missing_items,notnull"`
	ItemsJSON     string    `bun:"items_json,notnull"`
	EvidenceCount int       `bun:"evidence_count,notnull,default:0"`
	SignerName    string    `bun:"signer_name,notnull"`
	SignerRole    string    `bun:"signer_role,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
