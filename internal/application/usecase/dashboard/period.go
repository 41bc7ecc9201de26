package dashboard

import (
	"fmt"
	"time"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// monthAbbreviations holds the Portuguese short month names used in labels.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Fev",
	time.March:     "Mar",
	time.April:     "Abr",
	time.May:       "Mai",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Ago",
	time.September: "Set",
	time.October:   "Out",
	time.November:  "Nov",
	time.December:  "Dez",
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
}

// MonthLabel returns the "{month_abbr} {year}" label of date (e.g. "Mar 2025").
func MonthLabel(date time.Time) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
}

// MonthBounds returns the first and last day of the month.
func MonthBounds(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// GenerateMonthSeries returns every month between startDate and endDate.
// Empty months are included so charts have no gaps.
func GenerateMonthSeries(startDate, endDate time.Time) []PeriodInfo {
	var periods []PeriodInfo

	current, _ := MonthBounds(startDate.Year(), startDate.Month())
	for !current.After(endDate) {
		_, monthEnd := MonthBounds(current.Year(), current.Month())
		periods = append(periods, PeriodInfo{
			PeriodStart: current,
			PeriodEnd:   monthEnd,
			PeriodLabel: MonthLabel(current),
		})
		current = current.AddDate(0, 1, 0)
	}
	return periods
}

// PeriodLabel generates a human-readable label for a date range.
func PeriodLabel(startDate, endDate time.Time) string {
	if startDate.Year() == endDate.Year() && startDate.Month() == endDate.Month() {
		return MonthLabel(startDate)
	}
	return fmt.Sprintf("%s - %s", MonthLabel(startDate), MonthLabel(endDate))
}

// normalizePeriod validates a date range and truncates both ends to dates.
func normalizePeriod(startDate, endDate time.Time) (time.Time, time.Time, error) {
	if startDate.IsZero() {
		return time.Time{}, time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if endDate.IsZero() {
		return time.Time{}, time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	start, end := entity.DateOnly(startDate), entity.DateOnly(endDate)
	if end.Before(start) {
		return time.Time{}, time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return start, end, nil
}
