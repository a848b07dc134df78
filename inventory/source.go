package inventory

import (
	"sort"

	"github.com/odconnect/receive-tracking-order/branch"
)

// LegacySource adapts associations parsed from the legacy tracking sheet.
type LegacySource struct {
	assocs []TrackingAssociation
}

func NewLegacySource(assocs []TrackingAssociation) *LegacySource {
	return &LegacySource{assocs: assocs}
}

func (s *LegacySource) Associations() []TrackingAssociation {
	return s.assocs
}

// OrdersSource adapts the structured orders feed. Each order contributes
// one association; the kind comes from the equipment qualifier on the
// order's branch label.
type OrdersSource struct {
	orders []OrderRecord
}

func NewOrdersSource(orders []OrderRecord) *OrdersSource {
	return &OrdersSource{orders: orders}
}

func (s *OrdersSource) Associations() []TrackingAssociation {
	out := make([]TrackingAssociation, 0, len(s.orders))
	for _, o := range s.orders {
		if len(o.Items) == 0 {
			continue
		}
		label := o.Items[0].Branch
		kind := KindPOP
		if branch.IsEquipmentLabel(label) {
			kind = KindEquipment
		}
		out = append(out, TrackingAssociation{
			Number:    o.TrackingNo,
			Kind:      kind,
			Branch:    branch.BaseName(label),
			BranchKey: branch.Key(label),
		})
	}
	return out
}

// MapByBranch buckets associations under their canonical branch label.
func MapByBranch(assocs []TrackingAssociation) map[string][]TrackingAssociation {
	m := make(map[string][]TrackingAssociation)
	for _, a := range assocs {
		m[a.Branch] = append(m[a.Branch], a)
	}
	return m
}

// GroupByTracking buckets orders by tracking number, PENDING included.
func GroupByTracking(orders []OrderRecord) map[string][]OrderRecord {
	m := make(map[string][]OrderRecord)
	for _, o := range orders {
		no := o.TrackingNo
		if no == "" {
			no = PendingTracking
		}
		m[no] = append(m[no], o)
	}
	return m
}

// SortTrackingNumbers orders tracking numbers lexically with the PENDING
// bucket last.
func SortTrackingNumbers(numbers []string) {
	sort.Slice(numbers, func(i, j int) bool {
		if numbers[i] == PendingTracking {
			return false
		}
		if numbers[j] == PendingTracking {
			return true
		}
		return numbers[i] < numbers[j]
	})
}
