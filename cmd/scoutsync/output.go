package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeJSONLine prints a single JSON document on stdout. The commands
// emit exactly one line per run so output stays pipeable.
func writeJSONLine(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
