package inventory

import (
	"strings"

	"github.com/odconnect/receive-tracking-order/branch"
)

// Catalog is one reconciled load of every feed: the unified item list,
// the sorted canonical branch list and the per-branch tracking map.
// A Catalog is immutable once built; a reload swaps in a new one.
type Catalog struct {
	Items    []LineItem
	Branches []string
	Tracking map[string][]TrackingAssociation
}

// TrackingsFor returns the shipment associations for a canonical branch
// label, or nil when none are known.
func (c *Catalog) TrackingsFor(label string) []TrackingAssociation {
	if c == nil {
		return nil
	}
	return c.Tracking[label]
}

// View returns the filtered item slice for one branch: category "all"
// keeps every category, a search term keeps items whose name contains it
// case-insensitively. An empty branch yields an empty view.
func (c *Catalog) View(branchLabel, category, search string) []LineItem {
	if c == nil || branchLabel == "" {
		return nil
	}
	key := branch.Key(branchLabel)
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]LineItem, 0, 32)
	for _, it := range c.Items {
		if it.BranchKey != key {
			continue
		}
		if category != "" && category != CategoryAll && it.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(it.Item), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// HasBranch reports whether label is in the canonical branch list.
func (c *Catalog) HasBranch(label string) bool {
	if c == nil {
		return false
	}
	for _, b := range c.Branches {
		if b == label {
			return true
		}
	}
	return false
}
