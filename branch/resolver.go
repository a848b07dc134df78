package branch

import "strings"

// Resolve maps a raw branch label onto the canonical label from the
// ground-truth set collected by the manifest parsers.
//
// Exact membership wins. On a miss the normalized keys are compared
// against every known label, then a whitespace-stripped fold is tried for
// pivot-sheet rows typed without spaces. The set holds tens to low
// hundreds of branches, so the linear scans are fine.
//
// A false result means the record carries a branch the manifest does not
// know about; callers drop such records rather than inventing a branch.
func Resolve(raw string, known *Set) (string, bool) {
	label := strings.TrimSpace(raw)
	if label == "" || known.Len() == 0 {
		return "", false
	}
	if known.Has(label) {
		return label, true
	}

	key := Key(label)
	for _, existing := range known.All() {
		if Key(existing) == key {
			return existing, true
		}
	}

	tight := tightFold(label)
	for _, existing := range known.All() {
		if tightFold(existing) == tight {
			return existing, true
		}
	}
	return "", false
}
