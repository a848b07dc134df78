// Package engine ties the load cycle, checklist and submission flow
// together behind one synchronous API.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/odconnect/receive-tracking-order/checklist"
	"github.com/odconnect/receive-tracking-order/feeds"
	"github.com/odconnect/receive-tracking-order/infrastructure/backend"
	"github.com/odconnect/receive-tracking-order/infrastructure/sqlite"
	"github.com/odconnect/receive-tracking-order/inventory"
	"github.com/odconnect/receive-tracking-order/media"
	"github.com/odconnect/receive-tracking-order/report"
)

// Status is the explicit load-cycle state. Error is distinct from
// loading: a failed load leaves no usable catalog behind.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ErrNotReady rejects operations that need a catalog before a load
// cycle has completed.
var ErrNotReady = errors.New("inventory catalog is not ready")

// TransportError marks a network failure dispatching a report. Nothing
// is cleared and the operator must resubmit manually.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "report dispatch failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

type Engine struct {
	loader  *feeds.Loader
	checks  *checklist.Checklist
	backend *backend.Client
	db      *sqlite.DB
	log     *slog.Logger

	mu      sync.RWMutex
	catalog *inventory.Catalog
	status  Status
	loadErr error
}

func New(loader *feeds.Loader, checks *checklist.Checklist, backendClient *backend.Client, db *sqlite.DB, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		loader:  loader,
		checks:  checks,
		backend: backendClient,
		db:      db,
		log:     logger,
		status:  StatusLoading,
	}
}

// Reload runs one full load cycle. All feeds are mandatory; any failure
// keeps the previous catalog out of reach and parks the engine in the
// error state.
func (e *Engine) Reload(ctx context.Context) error {
	e.mu.Lock()
	e.status = StatusLoading
	e.mu.Unlock()

	catalog, err := e.loader.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.status = StatusError
		e.loadErr = err
		e.catalog = nil
		e.log.Error("load cycle failed", slog.Any("err", err))
		return err
	}
	e.status = StatusReady
	e.loadErr = nil
	e.catalog = catalog
	e.log.Info("load cycle complete",
		slog.Int("items", len(catalog.Items)),
		slog.Int("branches", len(catalog.Branches)))
	return nil
}

// Status returns the load state and, in the error state, the cause.
func (e *Engine) Status() (Status, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status, e.loadErr
}

// Catalog returns the current catalog or ErrNotReady.
func (e *Engine) Catalog() (*inventory.Catalog, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.status != StatusReady || e.catalog == nil {
		return nil, ErrNotReady
	}
	return e.catalog, nil
}

// View returns the filtered items for a branch plus checklist progress.
func (e *Engine) View(ctx context.Context, branchLabel, category, search string) ([]inventory.LineItem, checklist.Progress, error) {
	cat, err := e.Catalog()
	if err != nil {
		return nil, checklist.Progress{}, err
	}
	view := cat.View(branchLabel, category, search)
	checked, err := e.checks.Load(ctx)
	if err != nil {
		return nil, checklist.Progress{}, fmt.Errorf("load checklist: %w", err)
	}
	return view, checklist.ProgressFor(view, checked), nil
}

// Checked returns the persisted check map.
func (e *Engine) Checked(ctx context.Context) (map[string]bool, error) {
	return e.checks.Load(ctx)
}

// Toggle flips one item's received state.
func (e *Engine) Toggle(ctx context.Context, id string) (bool, error) {
	return e.checks.Toggle(ctx, id)
}

// ToggleAll checks or unchecks the whole filtered view, search term
// included, so select-all touches exactly the items on screen.
func (e *Engine) ToggleAll(ctx context.Context, branchLabel, category, search string, checked bool) error {
	cat, err := e.Catalog()
	if err != nil {
		return err
	}
	view := cat.View(branchLabel, category, search)
	ids := make([]string, 0, len(view))
	for _, it := range view {
		ids = append(ids, it.ID)
	}
	return e.checks.SetMany(ctx, ids, checked)
}

// Submit validates, freezes and dispatches a receipt report, then clears
// the checklist entries belonging to the submitted scope. On a transport
// failure nothing is cleared.
func (e *Engine) Submit(ctx context.Context, in report.Input) (*report.Report, error) {
	cat, err := e.Catalog()
	if err != nil {
		return nil, err
	}
	scope := cat.View(in.Branch, in.Category, "")

	checked, err := e.checks.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}

	rep, err := report.Build(in, scope, checked)
	if err != nil {
		return nil, err
	}

	images, err := media.EncodeForSubmission(in.Evidence)
	if err != nil {
		return nil, err
	}
	rep.Images = images

	if err := e.backend.SubmitReport(ctx, rep); err != nil {
		return nil, &TransportError{Err: err}
	}

	if e.db != nil {
		if err := report.SaveLog(ctx, e.db, rep, len(images)); err != nil {
			e.log.Error("journal report", slog.String("branch", rep.Branch), slog.Any("err", err))
		}
	}
	if err := e.checks.ClearScope(ctx, rep.ScopeIDs()); err != nil {
		e.log.Error("clear submitted scope", slog.Any("err", err))
	}
	return rep, nil
}
