package dto

// PeriodQuery represents the date range of a dashboard widget.
type PeriodQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
