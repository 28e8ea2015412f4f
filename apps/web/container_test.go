package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoweb "github.com/lewisTech25code/lewis/apps/web/echo"
	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/user"
)

func Test_newContainer(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("TEST_DATABASE_DSN", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	t.Setenv("TEST_SERVER_DISABLE_REQ_LOGS", "true")

	c, err := newContainer()
	require.NoError(t, err)

	err = c.Invoke(func(conf *core.Config, db *sqlx.DB, usrSvc *user.Service, server *echoweb.Server) {
		defer db.Close()

		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.NoError(t, conf.Check())

		admin, created, err := usrSvc.EnsureAdmin(context.Background(), conf.AdminPassword)
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, admin.IsAdmin)

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}
