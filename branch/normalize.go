// Package branch canonicalizes retail branch identity across data sources.
//
// Every feed spells branch names slightly differently (casing, stray
// whitespace, an "(Equipment)" qualifier on equipment-only ledger rows).
// All joins in the engine go through Key, so two labels for the same
// physical branch must always produce the same key and labels for
// different branches must never collide.
package branch

import (
	"regexp"
	"strings"
)

var equipmentSuffix = regexp.MustCompile(`(?i)\s*\(\s*equipment\s*\)\s*$`)

// Key returns the canonical join key for a raw branch label.
//
// It trims surrounding whitespace, drops a trailing "(Equipment)"
// qualifier, lower-cases the label and collapses internal whitespace
// runs to single spaces.
func Key(raw string) string {
	s := strings.TrimSpace(raw)
	s = equipmentSuffix.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// BaseName strips the "(Equipment)" qualifier but keeps the original
// casing. Used for display grouping where the equipment ledger row and
// the POP row of one branch collapse into a single entry.
func BaseName(raw string) string {
	return strings.TrimSpace(equipmentSuffix.ReplaceAllString(raw, ""))
}

// IsEquipmentLabel reports whether the label carries the equipment
// qualifier.
func IsEquipmentLabel(raw string) bool {
	return equipmentSuffix.MatchString(strings.TrimSpace(raw))
}

// tightFold removes all whitespace and lower-cases. Looser than Key; used
// only as a last-resort comparison for pivot-sheet rows where branch
// cells are sometimes typed without spaces.
func tightFold(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, "")
}
