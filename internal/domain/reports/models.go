package reports

type EmployeeProjectRow struct {
	Employee     string `json:"employee"`
	Project      string `json:"project"`
	Role         string `json:"role"`
	AssignedDate string `json:"assignedDate"`
}

type MetricAverage struct {
	Field   string   `json:"field"`
	Label   string   `json:"label"`
	Average *float64 `json:"average"`
	Samples int      `json:"samples"`
}

type PerformanceSummary struct {
	EmployeeID          int64           `json:"employeeId"`
	Employee            string          `json:"employee"`
	ReviewCount         int             `json:"reviewCount"`
	Metrics             []MetricAverage `json:"metrics"`
	OverallRating       *float64        `json:"overallRating"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	Comments            []string        `json:"comments"`
	GoalsForNextPeriod  []string        `json:"goalsForNextPeriod"`
}

// Average reports the mean for a metric field or overall_rating. The bool is
// false when no review carried a numeric value for it.
func (s PerformanceSummary) Average(field string) (float64, bool) {
	if field == "overall_rating" {
		if s.OverallRating == nil {
			return 0, false
		}
		return *s.OverallRating, true
	}
	for _, m := range s.Metrics {
		if m.Field == field && m.Average != nil {
			return *m.Average, true
		}
	}
	return 0, false
}

type SummaryStatus string

const (
	StatusFound            SummaryStatus = "found"
	StatusEmployeeNotFound SummaryStatus = "employee_not_found"
	StatusNoReviews        SummaryStatus = "no_reviews"
)

// SummaryResult is either a summary or an informational message explaining
// why there is none.
type SummaryResult struct {
	Status     SummaryStatus       `json:"status"`
	EmployeeID int64               `json:"employeeId"`
	Summary    *PerformanceSummary `json:"summary,omitempty"`
	Message    string              `json:"message,omitempty"`
}

func (r SummaryResult) Found() bool {
	return r.Status == StatusFound && r.Summary != nil
}

type Dashboard struct {
	Employees   int64 `json:"employees"`
	Projects    int64 `json:"projects"`
	Assignments int64 `json:"assignments"`
	Reviews     int64 `json:"reviews"`
}
