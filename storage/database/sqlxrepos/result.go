package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/result"
)

type resultRepository struct {
	db core.DB
}

var _ result.Repository = (*resultRepository)(nil) // interface compliance check

func NewResultRepository(db core.DB) result.Repository {
	return &resultRepository{db: db}
}

func (repo *resultRepository) CreateResult(ctx context.Context, res result.Result) (result.Result, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := repo.db.Rebind(`
		INSERT INTO results (student_id, subject, marks, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	if err := repo.db.QueryRowxContext(ctx, q, res.StudentID, res.Subject, res.Marks, res.CreatedAt).Scan(&res.ID); err != nil {
		return result.Result{}, errors.Wrap(err, "inserting result")
	}
	return res, nil
}

func (repo *resultRepository) QueryResultsByStudent(ctx context.Context, studentID int) ([]result.Result, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	results := make([]result.Result, 0)
	q := repo.db.Rebind(`
		SELECT id, student_id, subject, marks, created_at
		FROM results WHERE student_id = ? ORDER BY id`)
	if err := repo.db.SelectContext(ctx, &results, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting results")
	}
	return results, nil
}
