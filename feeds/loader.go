// Package feeds fetches the spreadsheet exports and reconciles them into
// one inventory catalog.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/odconnect/receive-tracking-order/branch"
	"github.com/odconnect/receive-tracking-order/ingest"
	"github.com/odconnect/receive-tracking-order/inventory"
)

// ErrNoHeader reports a feed whose expected header row was not found.
// Every feed is mandatory, so one bad source fails the whole load.
var ErrNoHeader = errors.New("header row not found")

// URLs holds the five export endpoints of one manifest workbook.
type URLs struct {
	Brand     string
	System    string
	Special   string
	Equipment string
	Tracking  string
}

// Loader fetches and parses a full load cycle.
type Loader struct {
	urls   URLs
	client *http.Client
}

func NewLoader(urls URLs, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{urls: urls, client: client}
}

// Load fetches all feeds concurrently, fails fast when any fetch fails,
// then runs one synchronous parse pass and returns the reconciled
// catalog. There is no partial-source degraded mode.
func (l *Loader) Load(ctx context.Context) (*inventory.Catalog, error) {
	var brand, system, special, equipment, tracking string

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(name, url string, dst *string) {
		g.Go(func() error {
			body, err := l.fetchText(gctx, url)
			if err != nil {
				return fmt.Errorf("fetch %s feed: %w", name, err)
			}
			*dst = body
			return nil
		})
	}
	fetch("brand", l.urls.Brand, &brand)
	fetch("system", l.urls.System, &system)
	fetch("special", l.urls.Special, &special)
	fetch("equipment", l.urls.Equipment, &equipment)
	fetch("tracking", l.urls.Tracking, &tracking)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Reconcile(brand, system, special, equipment, tracking)
}

// Reconcile parses already-fetched feed text into a catalog. Split out
// from Load so the parse pass is testable without a network.
func Reconcile(brand, system, special, equipment, tracking string) (*inventory.Catalog, error) {
	known := branch.NewSet()
	var items []inventory.LineItem

	matrices := []struct {
		name     string
		text     string
		category string
	}{
		{"brand", brand, inventory.CategoryBrand},
		{"system", system, inventory.CategorySystem},
		{"special", special, inventory.CategorySpecial},
	}
	for _, m := range matrices {
		parsed, set := ingest.ParseMatrix(m.text, m.category)
		if set.Len() == 0 {
			return nil, fmt.Errorf("%s feed: %w", m.name, ErrNoHeader)
		}
		known.Merge(set)
		items = append(items, parsed...)
	}

	equipmentItems := ingest.ParseEquipment(equipment, inventory.CategoryEquipment, known)
	if equipmentItems == nil {
		return nil, fmt.Errorf("equipment feed: %w", ErrNoHeader)
	}
	items = append(items, equipmentItems...)

	assocs := ingest.ParseTracking(tracking, known)
	source := inventory.NewLegacySource(assocs)

	return &inventory.Catalog{
		Items:    items,
		Branches: selectBranches(known),
		Tracking: inventory.MapByBranch(source.Associations()),
	}, nil
}

// selectBranches sorts the ground-truth labels and drops header debris
// that slipped past the column filters.
func selectBranches(known *branch.Set) []string {
	out := make([]string, 0, known.Len())
	for _, label := range known.Sorted() {
		if len(label) <= 2 || strings.Contains(label, "Total") || strings.Contains(label, "POP") {
			continue
		}
		out = append(out, label)
	}
	return out
}

func (l *Loader) fetchText(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("feed url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
