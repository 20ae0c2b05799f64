package performance

import (
	"fmt"
	"math"
)

const (
	MinMetric = 1
	MaxMetric = 4
)

func (m Metrics) Values() []int {
	return []int{m.OnTimeDelivery, m.QualityOfWork, m.TeamCollaboration, m.ProblemSolving, m.Communication}
}

// Validate returns the names of metrics outside MinMetric..MaxMetric.
func (m Metrics) Validate() []string {
	var bad []string
	for i, value := range m.Values() {
		if value < MinMetric || value > MaxMetric {
			bad = append(bad, MetricFields[i])
		}
	}
	return bad
}

func (m Metrics) OverallRating() float64 {
	values := m.Values()
	total := 0
	for _, v := range values {
		total += v
	}
	return Round2(float64(total) / float64(len(values)))
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func metricError(fields []string) string {
	return fmt.Sprintf("metrics must be between %d and %d: %v", MinMetric, MaxMetric, fields)
}
