package reports

import (
	"fmt"
	"math"

	"perftrack/internal/domain/performance"
)

// BuildPerformanceSummary aggregates raw review documents. A document only
// contributes to a metric's mean when that field holds a number; text fields
// keep non-empty strings in document order.
func BuildPerformanceSummary(employeeID int64, employee string, docs []performance.Document) PerformanceSummary {
	summary := PerformanceSummary{
		EmployeeID:          employeeID,
		Employee:            employee,
		ReviewCount:         len(docs),
		Metrics:             make([]MetricAverage, 0, len(performance.MetricFields)),
		Strengths:           textValues(docs, performance.FieldStrengths),
		AreasForImprovement: textValues(docs, performance.FieldAreasForImprovement),
		Comments:            textValues(docs, performance.FieldComments),
		GoalsForNextPeriod:  textValues(docs, performance.FieldGoalsForNextPeriod),
	}

	for _, field := range performance.MetricFields {
		avg, samples := mean(docs, field)
		summary.Metrics = append(summary.Metrics, MetricAverage{
			Field:   field,
			Label:   performance.FieldLabels[field],
			Average: avg,
			Samples: samples,
		})
	}
	summary.OverallRating, _ = mean(docs, performance.FieldOverallRating)
	return summary
}

func employeeNotFound(employeeID int64) SummaryResult {
	return SummaryResult{
		Status:     StatusEmployeeNotFound,
		EmployeeID: employeeID,
		Message:    fmt.Sprintf("Employee %d not found", employeeID),
	}
}

func noReviews(employeeID int64) SummaryResult {
	return SummaryResult{
		Status:     StatusNoReviews,
		EmployeeID: employeeID,
		Message:    fmt.Sprintf("No reviews found for employee %d", employeeID),
	}
}

func mean(docs []performance.Document, field string) (*float64, int) {
	total := 0.0
	samples := 0
	for _, doc := range docs {
		value, ok := numeric(doc[field])
		if !ok {
			continue
		}
		total += value
		samples++
	}
	if samples == 0 {
		return nil, 0
	}
	avg := performance.Round2(total / float64(samples))
	return &avg, samples
}

func numeric(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case int:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case float32:
		out = float64(v)
	case float64:
		out = v
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func textValues(docs []performance.Document, field string) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		if text, ok := doc[field].(string); ok && text != "" {
			out = append(out, text)
		}
	}
	return out
}
