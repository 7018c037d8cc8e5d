package tabular

import "strings"

// HeaderIndex maps human-readable column labels to positions. Lookup is
// by case-insensitive substring so minor header renames across export
// versions ("Member ID" vs "BSA Member ID #") keep resolving.
type HeaderIndex struct {
	labels []string
}

func NewHeaderIndex(fields []string) HeaderIndex {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return HeaderIndex{labels: labels}
}

func (h HeaderIndex) Len() int {
	return len(h.labels)
}

// Find returns the column for a label. Exact matches win over
// substring matches so "Advancement" resolves next to an
// "Advancement Type" column.
func (h HeaderIndex) Find(label string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(label))
	for i, l := range h.labels {
		if l == needle {
			return i, true
		}
	}
	for i, l := range h.labels {
		if strings.Contains(l, needle) {
			return i, true
		}
	}
	return 0, false
}

// Get reads the labeled column out of a data row, returning "" when the
// column is unknown or the row is short.
func (h HeaderIndex) Get(fields []string, label string) string {
	i, ok := h.Find(label)
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
