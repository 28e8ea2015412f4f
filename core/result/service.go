package result

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
)

type (
	Repository interface {
		CreateResult(ctx context.Context, res Result) (Result, error)
		// QueryResultsByStudent lists the results of a student in insertion order.
		QueryResultsByStudent(ctx context.Context, studentID int) ([]Result, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add records a result. The student id is not checked against the users.
// Non numeric student id or marks yield a *core.ValidationError.
func (svc *Service) Add(ctx context.Context, nr NewResult) (Result, error) {
	studentID, marks, err := nr.parse()
	if err != nil {
		return Result{}, err
	}
	res, err := svc.repo.CreateResult(ctx, Result{
		StudentID: studentID,
		Subject:   core.CleanString(nr.Subject),
		Marks:     marks,
		CreatedAt: time.Now().UTC(),
	})
	return res, errors.Wrap(err, "adding result")
}

func (svc *Service) ListForStudent(ctx context.Context, studentID int) ([]Result, error) {
	return svc.repo.QueryResultsByStudent(ctx, studentID)
}
