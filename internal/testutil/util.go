package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
	"github.com/lewisTech25code/lewis/storage/database"
)

// NewConfig returns a TEST configuration pointing at a fresh in-memory sqlite database.
func NewConfig() *core.Config {
	return &core.Config{
		Env:           "TEST",
		Build:         "test",
		AppName:       "Meru Poly",
		TestMode:      true,
		SecretKey:     "test-secret-key",
		AdminPassword: "admin123",
		Server: core.ServerConfig{
			Address:                ":0",
			Host:                   "localhost",
			ShutdownTimeout:        time.Second,
			SessionExpirationDelta: time.Hour,
			DisableReqLogs:         true,
		},
		Database: core.DatabaseConfig{
			Engine: database.EngineSQLite,
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString()),
		},
	}
}

// OpenDB opens and migrates a private in-memory database, closed when the test ends.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(NewConfig())
	if err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, uname, pwd string, isAdmin bool, balance int) user.User {
	t.Helper()

	usr := user.User{
		Username:  uname,
		IsAdmin:   isAdmin,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateResult(t *testing.T, repo result.Repository, studentID int, subject string, marks int) result.Result {
	t.Helper()

	res, err := repo.CreateResult(context.Background(), result.Result{
		StudentID: studentID,
		Subject:   subject,
		Marks:     marks,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateResult(): %v", err)
	}
	return res
}
