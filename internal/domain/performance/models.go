package performance

const (
	FieldEmployeeID          = "employee_id"
	FieldReviewDate          = "review_date"
	FieldReviewerName        = "reviewer_name"
	FieldOnTimeDelivery      = "on_time_delivery"
	FieldQualityOfWork       = "quality_of_work"
	FieldTeamCollaboration   = "team_collaboration"
	FieldProblemSolving      = "problem_solving"
	FieldCommunication       = "communication"
	FieldOverallRating       = "overall_rating"
	FieldStrengths           = "strengths"
	FieldAreasForImprovement = "areas_for_improvement"
	FieldComments            = "comments"
	FieldGoalsForNextPeriod  = "goals_for_next_period"
)

// MetricFields lists the scored fields in display order.
var MetricFields = []string{
	FieldOnTimeDelivery,
	FieldQualityOfWork,
	FieldTeamCollaboration,
	FieldProblemSolving,
	FieldCommunication,
}

var TextFields = []string{
	FieldStrengths,
	FieldAreasForImprovement,
	FieldComments,
	FieldGoalsForNextPeriod,
}

var FieldLabels = map[string]string{
	FieldEmployeeID:          "Employee ID",
	FieldReviewDate:          "Review Date",
	FieldReviewerName:        "Reviewer Name",
	FieldOnTimeDelivery:      "On-Time Delivery",
	FieldQualityOfWork:       "Quality of Work",
	FieldTeamCollaboration:   "Team Collaboration",
	FieldProblemSolving:      "Problem Solving",
	FieldCommunication:       "Communication",
	FieldOverallRating:       "Overall Rating",
	FieldStrengths:           "Strengths",
	FieldAreasForImprovement: "Areas for Improvement",
	FieldComments:            "Comments",
	FieldGoalsForNextPeriod:  "Goals for Next Period",
}

type Metrics struct {
	OnTimeDelivery    int `json:"onTimeDelivery"`
	QualityOfWork     int `json:"qualityOfWork"`
	TeamCollaboration int `json:"teamCollaboration"`
	ProblemSolving    int `json:"problemSolving"`
	Communication     int `json:"communication"`
}

// Review is the stored document. It is never updated after insert.
type Review struct {
	EmployeeID          int64   `bson:"employee_id" json:"employeeId"`
	ReviewDate          string  `bson:"review_date" json:"reviewDate"`
	ReviewerName        string  `bson:"reviewer_name" json:"reviewerName"`
	OnTimeDelivery      int     `bson:"on_time_delivery" json:"onTimeDelivery"`
	QualityOfWork       int     `bson:"quality_of_work" json:"qualityOfWork"`
	TeamCollaboration   int     `bson:"team_collaboration" json:"teamCollaboration"`
	ProblemSolving      int     `bson:"problem_solving" json:"problemSolving"`
	Communication       int     `bson:"communication" json:"communication"`
	OverallRating       float64 `bson:"overall_rating" json:"overallRating"`
	Strengths           string  `bson:"strengths" json:"strengths"`
	AreasForImprovement string  `bson:"areas_for_improvement" json:"areasForImprovement"`
	Comments            string  `bson:"comments" json:"comments"`
	GoalsForNextPeriod  string  `bson:"goals_for_next_period" json:"goalsForNextPeriod"`
}

type ReviewInput struct {
	EmployeeID          int64   `json:"employeeId"`
	ReviewDate          string  `json:"reviewDate"`
	ReviewerName        string  `json:"reviewerName"`
	Metrics             Metrics `json:"metrics"`
	Strengths           string  `json:"strengths"`
	AreasForImprovement string  `json:"areasForImprovement"`
	Comments            string  `json:"comments"`
	GoalsForNextPeriod  string  `json:"goalsForNextPeriod"`
}

// Document is a stored review as read back, without the store's _id. Values
// keep whatever type the store returned.
type Document map[string]any

// ReviewRecord is a Document keyed by display label.
type ReviewRecord map[string]any

func Labeled(doc Document) ReviewRecord {
	out := make(ReviewRecord, len(doc))
	for key, value := range doc {
		if label, ok := FieldLabels[key]; ok {
			out[label] = value
			continue
		}
		out[key] = value
	}
	return out
}
