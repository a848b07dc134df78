// Package checklist tracks per-item received state for the current load.
//
// State is sparse: a persisted entry means "checked", absence means
// unchecked. Nothing is ever written for an unchecked item, so clearing a
// check removes the entry outright. Entries are keyed globally by item id
// (not by session) so a restart restores the exact prior state.
package checklist

import (
	"context"
	"strings"

	"github.com/odconnect/receive-tracking-order/infrastructure/kv"
	"github.com/odconnect/receive-tracking-order/inventory"
)

// KeyPrefix namespaces checklist entries in the shared key-value store.
const KeyPrefix = "pop_check_"

type Checklist struct {
	store kv.Store
}

func New(store kv.Store) *Checklist {
	return &Checklist{store: store}
}

// Load enumerates persisted entries and rebuilds the in-memory check map.
func (c *Checklist) Load(ctx context.Context) (map[string]bool, error) {
	keys, err := c.store.KeysWithPrefix(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	checked := make(map[string]bool, len(keys))
	for _, key := range keys {
		checked[strings.TrimPrefix(key, KeyPrefix)] = true
	}
	return checked, nil
}

// Toggle flips one item and persists the change immediately. It returns
// the new state.
func (c *Checklist) Toggle(ctx context.Context, id string) (bool, error) {
	key := KeyPrefix + id
	_, exists, err := c.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if exists {
		return false, c.store.Remove(ctx, key)
	}
	return true, c.store.Set(ctx, key, "true")
}

// SetMany checks or unchecks every given id, mirroring the select-all
// control.
func (c *Checklist) SetMany(ctx context.Context, ids []string, checked bool) error {
	for _, id := range ids {
		key := KeyPrefix + id
		if checked {
			if err := c.store.Set(ctx, key, "true"); err != nil {
				return err
			}
			continue
		}
		if err := c.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ClearScope removes entries for the submitted item ids only; checks
// belonging to other branches or categories survive.
func (c *Checklist) ClearScope(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := c.store.Remove(ctx, KeyPrefix+id); err != nil {
			return err
		}
	}
	return nil
}

// Progress summarizes a filtered view against the check map.
type Progress struct {
	Count    int  `json:"count"`
	Total    int  `json:"total"`
	Percent  int  `json:"percent"`
	Complete bool `json:"isComplete"`
}

// ProgressFor computes checked/total for a view. An empty view is zero
// progress and never complete.
func ProgressFor(view []inventory.LineItem, checked map[string]bool) Progress {
	if len(view) == 0 {
		return Progress{}
	}
	count := 0
	for _, it := range view {
		if checked[it.ID] {
			count++
		}
	}
	total := len(view)
	return Progress{
		Count:    count,
		Total:    total,
		Percent:  int(float64(count)/float64(total)*100 + 0.5),
		Complete: count == total,
	}
}
