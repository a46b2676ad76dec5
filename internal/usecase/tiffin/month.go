package tiffin

import (
	"strings"
	"time"

	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
)

// MonthRange resolves a case-insensitive English month name plus a year to
// the UTC day-boundary range covering that month: [start, end) with end the
// first instant of the following month.
func MonthRange(month string, year int) (start, end time.Time, canonical string, err error) {
	name := strings.TrimSpace(month)
	if name == "" || year <= 0 {
		return time.Time{}, time.Time{}, "", httperr.ErrBusiness("invalid_month_or_year")
	}

	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			start = time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
			return start, end, m.String(), nil
		}
	}

	return time.Time{}, time.Time{}, "", httperr.ErrBusiness("invalid_month_or_year")
}
