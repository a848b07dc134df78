// Package backend talks to the remote script API. Queries carry an
// action discriminator on the query string; writes post a JSON body with
// an action field and return no usable response, so a nil error only
// means the request was dispatched, not that the backend persisted it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/odconnect/receive-tracking-order/ingest"
	"github.com/odconnect/receive-tracking-order/report"
)

// HistoryRecord is one persisted receipt report as the backend returns
// it from getHistory. Items holds the snapshot re-encoded as JSON text.
type HistoryRecord struct {
	Date       string `json:"date"`
	Branch     string `json:"branch"`
	TrackingNo string `json:"trackingNo"`
	SignerName string `json:"signerName"`
	SignerRole string `json:"signerRole"`
	Items      string `json:"items"`
	Missing    string `json:"missing"`
	Note       string `json:"note"`
	Images     string `json:"images"`
}

// RangeSummaryEntry names a branch in a range notification.
type RangeSummaryEntry struct {
	Branch string   `json:"branch"`
	Dates  []string `json:"dates"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: client}
}

// ShipmentItems fetches the structured orders feed.
func (c *Client) ShipmentItems(ctx context.Context) ([]ingest.ShipmentItem, error) {
	var items []ingest.ShipmentItem
	params := url.Values{
		"action": {"getShipmentItems"},
		"_t":     {strconv.FormatInt(time.Now().UnixMilli(), 10)},
	}
	if err := c.getJSON(ctx, params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// History fetches persisted reports for one branch and date.
func (c *Client) History(ctx context.Context, branch, date string) ([]HistoryRecord, error) {
	var records []HistoryRecord
	params := url.Values{
		"action": {"getHistory"},
		"branch": {branch},
		"date":   {date},
	}
	if err := c.getJSON(ctx, params, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RangeStatus returns, per date, the branches that submitted a report.
func (c *Client) RangeStatus(ctx context.Context, startDate, endDate string) (map[string][]string, error) {
	submitted := make(map[string][]string)
	params := url.Values{
		"action":    {"getRangeStatus"},
		"startDate": {startDate},
		"endDate":   {endDate},
	}
	if err := c.getJSON(ctx, params, &submitted); err != nil {
		return nil, err
	}
	return submitted, nil
}

// SubmitReport dispatches a receipt report. Fire-and-forget.
func (c *Client) SubmitReport(ctx context.Context, rep *report.Report) error {
	body := struct {
		Action string `json:"action"`
		*report.Report
	}{Action: "submitReport", Report: rep}
	return c.post(ctx, body)
}

// UpdateTracking assigns a tracking number to an order. The full branch
// label (equipment qualifier included) identifies the ledger row.
func (c *Client) UpdateTracking(ctx context.Context, orderNo, branch, trackingNo string) error {
	return c.post(ctx, map[string]string{
		"action":     "updateTracking",
		"orderNo":    orderNo,
		"branch":     branch,
		"trackingNo": trackingNo,
	})
}

// SendEmail triggers the follow-up notification for one date.
func (c *Client) SendEmail(ctx context.Context, date string, notSubmitted []string) error {
	return c.post(ctx, map[string]any{
		"action":           "sendEmail",
		"date":             date,
		"notSubmittedList": notSubmitted,
	})
}

// SendRangeEmail triggers the range summary notification.
func (c *Client) SendRangeEmail(ctx context.Context, startDate, endDate string, summary []RangeSummaryEntry) error {
	return c.post(ctx, map[string]any{
		"action":    "sendRangeEmail",
		"startDate": startDate,
		"endDate":   endDate,
		"summary":   summary,
	})
}

func (c *Client) getJSON(ctx context.Context, params url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend query %s: %w", params.Get("action"), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend query %s: unexpected status %d", params.Get("action"), resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("backend query %s: decode response: %w", params.Get("action"), err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch request: %w", err)
	}
	// The script endpoint returns nothing useful; drain and move on.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}
