package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/infrastructure/backend"
	"github.com/odconnect/receive-tracking-order/ingest"
	"github.com/odconnect/receive-tracking-order/inventory"
)

const dateLayout = "2006-01-02"

// DailyStatus lists, for one date, which branches have and have not
// submitted a receipt report.
type DailyStatus struct {
	Date         string   `json:"date"`
	Submitted    []string `json:"submitted"`
	NotSubmitted []string `json:"notSubmitted"`
}

// RangeStatus expands the backend's submitted-per-date map over every
// day in the inclusive range, deriving the not-submitted side from the
// ground-truth branch list.
func (e *Engine) RangeStatus(ctx context.Context, startDate, endDate string) ([]DailyStatus, error) {
	cat, err := e.Catalog()
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q", endDate)
	}
	if start.After(end) {
		return nil, fmt.Errorf("start date is after end date")
	}

	submitted, err := e.backend.RangeStatus(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var out []DailyStatus
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(dateLayout)
		done := submitted[dateStr]
		if done == nil {
			done = []string{}
		}
		missing := make([]string, 0, len(cat.Branches))
		for _, b := range cat.Branches {
			if !contains(done, b) {
				missing = append(missing, b)
			}
		}
		out = append(out, DailyStatus{Date: dateStr, Submitted: done, NotSubmitted: missing})
	}
	return out, nil
}

// Notify asks the backend to chase the branches missing for one date.
func (e *Engine) Notify(ctx context.Context, date string, notSubmitted []string) error {
	return e.backend.SendEmail(ctx, date, notSubmitted)
}

// NotifyRange sends the range summary for branches that never submitted
// inside the window.
func (e *Engine) NotifyRange(ctx context.Context, startDate, endDate string, days []DailyStatus) error {
	perBranch := map[string]int{}
	for _, day := range days {
		for _, b := range day.Submitted {
			perBranch[b]++
		}
	}
	cat, err := e.Catalog()
	if err != nil {
		return err
	}
	summary := make([]backend.RangeSummaryEntry, 0)
	for _, b := range cat.Branches {
		if perBranch[b] == 0 {
			summary = append(summary, backend.RangeSummaryEntry{Branch: b, Dates: []string{}})
		}
	}
	return e.backend.SendRangeEmail(ctx, startDate, endDate, summary)
}

// ShipmentView is the admin view over the structured orders feed.
type ShipmentView struct {
	Branches  []string              `json:"branches"`
	Trackings []string              `json:"trackings"`
	Items     []ingest.ShipmentItem `json:"items"`
}

// Shipments fetches the orders feed and filters it the way the admin
// panel queries it: by base branch name, kind and tracking bucket.
// Tracking "ALL" keeps every bucket; an empty tracking filter returns no
// rows but still lists the available buckets.
func (e *Engine) Shipments(ctx context.Context, branchBase string, kind inventory.Kind, trackingFilter string) (*ShipmentView, error) {
	items, err := e.backend.ShipmentItems(ctx)
	if err != nil {
		return nil, err
	}

	view := &ShipmentView{Items: []ingest.ShipmentItem{}}

	seenBranch := map[string]struct{}{}
	for _, it := range items {
		base := branch.BaseName(it.Branch)
		if _, ok := seenBranch[base]; !ok {
			seenBranch[base] = struct{}{}
			view.Branches = append(view.Branches, base)
		}
	}
	sort.Strings(view.Branches)

	if branchBase == "" {
		return view, nil
	}
	target := branchBase
	if kind == inventory.KindEquipment {
		target = branchBase + " (Equipment)"
	}

	seenTracking := map[string]struct{}{}
	for _, it := range items {
		if it.Branch != target {
			continue
		}
		no := ingest.NormalizeTracking(it.TrackingNo)
		if _, ok := seenTracking[no]; !ok {
			seenTracking[no] = struct{}{}
			view.Trackings = append(view.Trackings, no)
		}
		if trackingFilter == "" {
			continue
		}
		if trackingFilter == "ALL" || no == trackingFilter {
			view.Items = append(view.Items, it)
		}
	}
	inventory.SortTrackingNumbers(view.Trackings)
	return view, nil
}

// UpdateTracking forwards a tracking-number assignment to the backend.
// The full branch label (equipment qualifier included) must be passed so
// the backend hits the right ledger row.
func (e *Engine) UpdateTracking(ctx context.Context, orderNo, branchLabel, trackingNo string) error {
	if orderNo == "" || trackingNo == "" {
		return fmt.Errorf("order number and tracking number are required")
	}
	return e.backend.UpdateTracking(ctx, orderNo, branchLabel, trackingNo)
}

// History fetches persisted reports for one branch and date. The caller
// typically renders the latest record.
func (e *Engine) History(ctx context.Context, branchLabel, date string) ([]backend.HistoryRecord, error) {
	return e.backend.History(ctx, branchLabel, date)
}

// Orders fetches and groups the structured feed into order records.
func (e *Engine) Orders(ctx context.Context) ([]inventory.OrderRecord, error) {
	items, err := e.backend.ShipmentItems(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.OrdersFromShipmentItems(items), nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
