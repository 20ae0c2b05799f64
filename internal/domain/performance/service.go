package performance

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"perftrack/internal/apperror"
	"perftrack/internal/domain/auth"
)

const dateLayout = "2006-01-02"

type Service struct {
	Store     ReviewStore
	Employees EmployeeChecker
	Audit     Auditor

	// CheckReferences makes SubmitReview verify the employee exists.
	CheckReferences bool
	Now             func() time.Time
}

func NewService(store ReviewStore, employees EmployeeChecker, auditor Auditor, checkReferences bool) *Service {
	return &Service{
		Store:           store,
		Employees:       employees,
		Audit:           auditor,
		CheckReferences: checkReferences,
		Now:             time.Now,
	}
}

func (s *Service) SubmitReview(ctx context.Context, session auth.Session, input ReviewInput) (Review, error) {
	if err := session.Require(auth.PermReviewsWrite); err != nil {
		return Review{}, err
	}
	if input.EmployeeID <= 0 {
		return Review{}, apperror.New(apperror.CodeValidation, "employee id must be positive")
	}
	if bad := input.Metrics.Validate(); len(bad) > 0 {
		return Review{}, apperror.New(apperror.CodeValidation, metricError(bad))
	}

	reviewDate := strings.TrimSpace(input.ReviewDate)
	if reviewDate == "" {
		reviewDate = s.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, reviewDate); err != nil {
		return Review{}, apperror.New(apperror.CodeValidation, "review date must be YYYY-MM-DD")
	}
	reviewer := strings.TrimSpace(input.ReviewerName)
	if reviewer == "" {
		reviewer = session.Username
	}

	if s.CheckReferences && s.Employees != nil {
		exists, err := s.Employees.EmployeeExists(ctx, input.EmployeeID)
		if err != nil {
			return Review{}, err
		}
		if !exists {
			return Review{}, apperror.New(apperror.CodeNotFound, fmt.Sprintf("employee %d not found", input.EmployeeID))
		}
	}

	review := Review{
		EmployeeID:          input.EmployeeID,
		ReviewDate:          reviewDate,
		ReviewerName:        reviewer,
		OnTimeDelivery:      input.Metrics.OnTimeDelivery,
		QualityOfWork:       input.Metrics.QualityOfWork,
		TeamCollaboration:   input.Metrics.TeamCollaboration,
		ProblemSolving:      input.Metrics.ProblemSolving,
		Communication:       input.Metrics.Communication,
		OverallRating:       input.Metrics.OverallRating(),
		Strengths:           input.Strengths,
		AreasForImprovement: input.AreasForImprovement,
		Comments:            input.Comments,
		GoalsForNextPeriod:  input.GoalsForNextPeriod,
	}
	if err := s.Store.Insert(ctx, review); err != nil {
		return Review{}, err
	}

	if s.Audit != nil {
		entityID := strconv.FormatInt(review.EmployeeID, 10)
		if err := s.Audit.Record(ctx, session.Username, "performance.review.create", "review", entityID, review); err != nil {
			slog.Warn("audit performance.review.create failed", "err", err)
		}
	}
	return review, nil
}

// ReviewsForEmployee returns the stored reviews keyed by display label. An
// employee without reviews yields an empty slice.
func (s *Service) ReviewsForEmployee(ctx context.Context, session auth.Session, employeeID int64) ([]ReviewRecord, error) {
	if err := session.Require(auth.PermReviewsRead); err != nil {
		return nil, err
	}
	docs, err := s.Store.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Labeled(doc))
	}
	return out, nil
}
