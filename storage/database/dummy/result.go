package dummydb

import (
	"context"
	"sort"

	"github.com/lewisTech25code/lewis/core/result"
)

type resultRepository struct {
	db *resultTable
}

var _ result.Repository = (*resultRepository)(nil) // interface compliance check

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{db: db.result}
}

func (repo *resultRepository) CreateResult(_ context.Context, res result.Result) (result.Result, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	res.ID = repo.db.pkCount
	repo.db.table[res.ID] = &res
	return res, nil
}

func (repo *resultRepository) QueryResultsByStudent(_ context.Context, studentID int) ([]result.Result, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	results := make([]result.Result, 0)
	for _, res := range repo.db.table {
		if res.StudentID == studentID {
			results = append(results, *res)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}
