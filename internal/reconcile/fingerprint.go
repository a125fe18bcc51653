package reconcile

import (
	"strconv"
	"strings"

	"github.com/nikbrunner/dropdown/internal/model"
)

// Fingerprint computes a cheap deterministic digest of a raw source list.
// It tracks value, text, selected state, grouping, and order; two lists
// differing in any of those produce different strings. Used only as an
// equality oracle to skip reconciliation when nothing changed.
func Fingerprint(entries []model.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsGroup() {
			children := make([]string, 0, len(e.Children))
			for _, c := range e.Children {
				children = append(children, triple(c))
			}
			parts = append(parts, "G:"+e.Label+":"+strings.Join(children, "|"))
			continue
		}
		parts = append(parts, "O:"+triple(e))
	}
	return strings.Join(parts, "||")
}

func triple(e model.Entry) string {
	return e.Value + ":" + e.Text + ":" + strconv.FormatBool(e.Selected)
}
