package tabular

import "strings"

const (
	delimiter = ','
	quote     = '"'
)

// ParseLine splits one export line into fields. A quote toggles delimiter
// handling off, a doubled quote inside a quoted field is a literal quote,
// and an unterminated quote swallows the rest of the line as field
// content. The function never fails; rows with too few fields are
// rejected by the callers that know the expected shape.
func ParseLine(line string) []string {
	fields := make([]string, 0, 16)
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote && inQuotes:
			if i+1 < len(runes) && runes[i+1] == quote {
				field.WriteRune(quote)
				i++
				continue
			}
			inQuotes = false
		case c == quote:
			inQuotes = true
		case c == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}

// JoinFields renders fields back into a line ParseLine can read. Used to
// funnel spreadsheet rows through the same parsing path as CSV rows.
func JoinFields(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		if strings.ContainsAny(f, ",\"\n") {
			parts[i] = "\"" + strings.ReplaceAll(f, "\"", "\"\"") + "\""
		} else {
			parts[i] = f
		}
	}
	return strings.Join(parts, ",")
}
