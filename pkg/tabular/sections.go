package tabular

import (
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
)

var ErrSectionNotFound = gerrors.New("section marker not found")

// SectionSpec names one logical record group inside a multi-section
// export: the marker row announcing it and an optional sentinel data row
// the exporter emits when the section has no records.
type SectionSpec struct {
	Marker        string
	BlankSentinel string
}

type Row struct {
	// Line is the 1-based line number in the source payload, kept for
	// parse error reporting.
	Line   int
	Fields []string
}

type Section struct {
	Marker string
	Header HeaderIndex
	Rows   []Row
}

// Extract locates each spec's marker row, treats the following line as
// that section's header, and collects data rows up to the next known
// marker or end of input. A missing marker yields an explicit error for
// that section so callers can tell "marker absent" from "section empty";
// the other sections still parse.
func Extract(lines []string, specs []SectionSpec) (map[string]*Section, []error) {
	markerAt := make(map[int]SectionSpec)
	for _, spec := range specs {
		for i, line := range lines {
			if strings.Contains(line, spec.Marker) {
				markerAt[i] = spec
				break
			}
		}
	}

	isMarkerLine := func(i int) bool {
		_, ok := markerAt[i]
		return ok
	}

	sections := make(map[string]*Section, len(specs))
	for i, spec := range markerAt {
		if i+1 >= len(lines) {
			sections[spec.Marker] = &Section{Marker: spec.Marker}
			continue
		}
		sec := &Section{
			Marker: spec.Marker,
			Header: NewHeaderIndex(ParseLine(lines[i+1])),
		}
		for j := i + 2; j < len(lines); j++ {
			if isMarkerLine(j) {
				break
			}
			line := strings.TrimRight(lines[j], "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if spec.BlankSentinel != "" && strings.Contains(line, spec.BlankSentinel) {
				continue
			}
			sec.Rows = append(sec.Rows, Row{Line: j + 1, Fields: ParseLine(line)})
		}
		sections[spec.Marker] = sec
	}

	var errs []error
	for _, spec := range specs {
		if _, ok := sections[spec.Marker]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrSectionNotFound, spec.Marker))
		}
	}
	return sections, errs
}
