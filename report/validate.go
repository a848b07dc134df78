// Package report builds and validates submission reports.
package report

import (
	"fmt"
	"strings"

	"github.com/odconnect/receive-tracking-order/inventory"
	"github.com/odconnect/receive-tracking-order/media"
)

// AllReceivedNote is filled in automatically when every item is checked
// and the operator supplied no note of their own.
const AllReceivedNote = "Received All POP Items Successfully."

// Signer roles accepted on the sign-off gate.
const (
	RoleBranchManager = "Branch Manager"
	RoleStaff         = "Staff"
)

// ValidationError blocks a submission before anything leaves the engine.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Input carries everything the operator supplied for one submission.
type Input struct {
	Branch       string       `json:"branch"`
	TrackingNo   string       `json:"trackingNo"`
	Category     string       `json:"category"`
	Date         string       `json:"date"`
	Note         string       `json:"note"`
	Evidence     []media.Blob `json:"evidence"`
	DefectMode   bool         `json:"defectMode"`
	SignerName   string       `json:"signerName"`
	SignerRole   string       `json:"signerRole"`
	Acknowledged bool         `json:"acknowledged"`
	Signature    string       `json:"signature"`
}

// SnapshotItem is one frozen line of the submitted scope.
type SnapshotItem struct {
	ID        string `json:"id"`
	Item      string `json:"item"`
	Qty       int    `json:"qty"`
	Category  string `json:"category"`
	IsChecked bool   `json:"isChecked"`
}

// Report is the immutable payload handed to the submission endpoint.
type Report struct {
	Branch        string         `json:"branch"`
	TrackingNo    string         `json:"trackingNo"`
	Category      string         `json:"category"`
	Date          string         `json:"date"`
	Note          string         `json:"note"`
	Images        []string       `json:"images"`
	MissingItems  string         `json:"missingItems"`
	ItemsSnapshot []SnapshotItem `json:"itemsSnapshot"`
	SignerName    string         `json:"signerName"`
	SignerRole    string         `json:"signerRole"`
	Signature     string         `json:"signature"`
}

// Build validates the submission preconditions in their fixed order and,
// when they all pass, freezes the current scope plus checklist state into
// a Report. Evidence is validated but not encoded here; the engine fills
// Images after compression. A *ValidationError means nothing was sent.
func Build(in Input, scope []inventory.LineItem, checked map[string]bool) (*Report, error) {
	// 1. Branch and date are mandatory.
	if strings.TrimSpace(in.Branch) == "" {
		return nil, invalid("please select a branch")
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, invalid("please select a date")
	}

	// 2. Evidence is unconditionally required.
	if len(in.Evidence) == 0 {
		return nil, invalid("please attach at least one photo or video")
	}
	if err := media.ValidateBatch(in.Evidence); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	snapshot := make([]SnapshotItem, 0, len(scope))
	missing := make([]string, 0)
	for _, it := range scope {
		isChecked := checked[it.ID]
		snapshot = append(snapshot, SnapshotItem{
			ID: it.ID, Item: it.Item, Qty: it.Qty, Category: it.Category, IsChecked: isChecked,
		})
		if !isChecked {
			missing = append(missing, fmt.Sprintf("- %s (Qty: %d)", it.Item, it.Qty))
		}
	}
	allMissing := len(snapshot) > 0 && len(missing) == len(snapshot)
	someMissing := len(missing) > 0
	note := strings.TrimSpace(in.Note)

	// 3. Nothing received needs an explicit reason.
	if allMissing && note == "" {
		return nil, invalid("no items are marked as received; please state the reason in the note")
	}
	// 4. Partial receipt needs a note or evidence as justification.
	if !allMissing && someMissing && note == "" && len(in.Evidence) == 0 {
		return nil, invalid("missing items: please provide details or attach evidence")
	}
	// 5. Defect reports always need both a note and evidence.
	if in.DefectMode {
		if note == "" {
			return nil, invalid("defect report: please provide details")
		}
		if len(in.Evidence) == 0 {
			return nil, invalid("defect report: please attach evidence")
		}
	}
	// 6. Complete receipt without a note gets the canonical one.
	if !someMissing && !in.DefectMode && note == "" {
		note = AllReceivedNote
	}

	// 7. Sign-off gates, layered on top of everything above.
	if strings.TrimSpace(in.SignerName) == "" {
		return nil, invalid("signer name is required")
	}
	if in.SignerRole != RoleBranchManager && in.SignerRole != RoleStaff {
		return nil, invalid("signer role must be %q or %q", RoleBranchManager, RoleStaff)
	}
	if !in.Acknowledged {
		return nil, invalid("please acknowledge the report before submitting")
	}
	if strings.TrimSpace(in.Signature) == "" {
		return nil, invalid("a signature is required")
	}

	missingText := "-"
	if someMissing {
		missingText = strings.Join(missing, "\n")
	}
	trackingNo := strings.TrimSpace(in.TrackingNo)
	if trackingNo == "" {
		trackingNo = "-"
	}

	return &Report{
		Branch:        in.Branch,
		TrackingNo:    trackingNo,
		Category:      in.Category,
		Date:          in.Date,
		Note:          note,
		MissingItems:  missingText,
		ItemsSnapshot: snapshot,
		SignerName:    strings.TrimSpace(in.SignerName),
		SignerRole:    in.SignerRole,
		Signature:     in.Signature,
	}, nil
}

// ScopeIDs lists the item ids covered by a report, for clearing the
// checklist after a successful dispatch.
func (r *Report) ScopeIDs() []string {
	ids := make([]string, 0, len(r.ItemsSnapshot))
	for _, it := range r.ItemsSnapshot {
		ids = append(ids, it.ID)
	}
	return ids
}
