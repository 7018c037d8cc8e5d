package tabular

import "fmt"

// RowError is one malformed row's human-readable parse error, indexed by
// source line number. Line 0 marks file-level problems such as a missing
// section marker.
type RowError struct {
	Line    int
	Message string
}

func (e RowError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
