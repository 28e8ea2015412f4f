package dummydb

import (
	"sync"

	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
)

type (
	DB struct {
		user   *userTable
		result *resultTable
	}

	userTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*user.User
	}

	resultTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*result.Result
	}
)

// Open returns an empty in-memory database.
func Open() *DB {
	return &DB{
		user:   &userTable{table: make(map[int]*user.User)},
		result: &resultTable{table: make(map[int]*result.Result)},
	}
}
