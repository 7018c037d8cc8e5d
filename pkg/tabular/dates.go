package tabular

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var usDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

// NormalizeUSDate pulls the first MM/DD/YYYY-shaped substring out of a
// field and re-emits it as YYYY-MM-DD. Export cells often carry the date
// inside status text ("Completed 03/14/2019"); placeholder values such
// as "__/__/____" carry no digits and report no value.
func NormalizeUSDate(s string) (string, bool) {
	m := usDateRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// ParseISODate converts a NormalizeUSDate result back to a UTC midnight
// time for persistence.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
