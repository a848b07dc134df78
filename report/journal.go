package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/infrastructure/sqlite"
	"github.com/odconnect/receive-tracking-order/models"
)

// SaveLog journals a dispatched report locally. Called after the payload
// was handed to the backend; the journal is the engine's own record, not
// the system of record.
func SaveLog(ctx context.Context, db *sqlite.DB, rep *Report, evidenceCount int) error {
	itemsJSON, err := json.Marshal(rep.ItemsSnapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO report_logs
  (branch, branch_key, tracking_no, category, report_date, note,
   missing_items, items_json, evidence_count, signer_name, signer_role, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			rep.Branch, branch.Key(rep.Branch), rep.TrackingNo, rep.Category,
			rep.Date, rep.Note, rep.MissingItems, string(itemsJSON),
			evidenceCount, rep.SignerName, rep.SignerRole)
		return err
	})
}

// ListLogs returns journaled reports, newest first, optionally filtered
// by branch and report date.
func ListLogs(ctx context.Context, db *sqlite.DB, branchLabel, date string) ([]models.ReportLog, error) {
	rows := make([]models.ReportLog, 0)
	query := `
SELECT id, branch, branch_key, tracking_no, category, report_date, note,
       missing_items, items_json, evidence_count, signer_name, signer_role, created_at
FROM report_logs`
	var (
		args  []any
		where []byte
	)
	appendCond := func(cond string, arg any) {
		if len(where) == 0 {
			where = append(where, " WHERE "...)
		} else {
			where = append(where, " AND "...)
		}
		where = append(where, cond...)
		args = append(args, arg)
	}
	if branchLabel != "" {
		appendCond("branch_key = ?", branch.Key(branchLabel))
	}
	if date != "" {
		appendCond("report_date = ?", date)
	}
	query += string(where) + " ORDER BY id DESC"

	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(query, args...).Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
