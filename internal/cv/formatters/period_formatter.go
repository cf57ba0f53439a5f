package formatters

import (
	"strings"

	"applica-cv/internal/model"
)

// Period renders "start<sep>end". A missing end collapses to the start alone
// so a stale null never prints as a dangling separator.
func Period(start, end, sep string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	switch {
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + sep + end
}

// ExperiencePeriod shows "Present" for current positions, never the stored end date.
func ExperiencePeriod(e model.Experience, s Style) string {
	return Period(e.StartDate, e.End(), s.RangeSeparator)
}

// EducationPeriod renders startYear and endYear in array-entry order.
func EducationPeriod(e model.Education, s Style) string {
	start, end := e.Years()
	return Period(start, end, s.RangeSeparator)
}
