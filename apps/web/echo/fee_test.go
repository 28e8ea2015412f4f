package echoweb

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_feeWeb(t *testing.T) {
	app := setup(t)
	alice := app.createStudent(t, "alice")
	cookie := app.sessionCookie(t, alice)

	app.run(t, []httpTest{
		{name: "balance", path: "/fees", cookie: cookie, wantBody: []string{"Balance: Ksh 15000", `href="/pay"`}},
		{name: "pay", path: "/pay", cookie: cookie, wantCode: http.StatusFound, wantLocation: "/fees"},
		{name: "paid", path: "/fees", cookie: cookie, wantBody: []string{"Balance: Ksh 0", "fully paid"}},
		{name: "pay again", path: "/pay", cookie: cookie, wantCode: http.StatusFound, wantLocation: "/fees"},
	})

	usr, err := app.usrSvc.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Zero(t, usr.Balance)
}

func Test_feeWeb_downloadStatement(t *testing.T) {
	app := setup(t)
	alice := app.createStudent(t, "alice")
	cookie := app.sessionCookie(t, alice)

	rec := app.do(httpTest{path: "/download_fee_statement", cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="fee_statement.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, rec.Body.String(), "(Student: alice)")
	assert.Contains(t, rec.Body.String(), "(Balance: Ksh 15000)")

	// statements are rendered per request
	other := app.do(httpTest{path: "/download_fee_statement", cookie: app.sessionCookie(t, app.createStudent(t, "bob"))})
	require.Equal(t, http.StatusOK, other.Code)
	assert.True(t, bytes.HasPrefix(other.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, other.Body.String(), "(Student: bob)")
	assert.NotContains(t, other.Body.String(), "alice")
}

func Test_endToEnd(t *testing.T) {
	app := setup(t)

	rec := app.do(httpTest{
		method: http.MethodPost, path: "/register",
		form: url.Values{"username": {"alice"}, "password": {"pw1"}},
	})
	checkResponse(t, httpTest{wantCode: http.StatusFound, wantLocation: "/login"}, rec)

	rec = app.do(httpTest{
		method: http.MethodPost, path: "/login",
		form: url.Values{"username": {"alice"}, "password": {"pw1"}},
	})
	checkResponse(t, httpTest{wantCode: http.StatusFound, wantLocation: "/student"}, rec)
	cookie := responseCookie(rec)
	require.NotNil(t, cookie)

	claims, err := parseToken(cookie.Value, app.conf.SecretKey)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)

	sent := &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	checkResponse(t, httpTest{wantBody: []string{"Balance: Ksh 15000"}}, app.do(httpTest{path: "/fees", cookie: sent}))
	checkResponse(t, httpTest{wantCode: http.StatusFound, wantLocation: "/fees"}, app.do(httpTest{path: "/pay", cookie: sent}))
	checkResponse(t, httpTest{wantBody: []string{"Balance: Ksh 0"}}, app.do(httpTest{path: "/fees", cookie: sent}))

	usr, err := app.usrSvc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, usr.Balance)

	rec = app.do(httpTest{path: "/download_fee_statement", cookie: sent})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, rec.Body.String(), "(Student: alice)")
	assert.Contains(t, rec.Body.String(), "(Balance: Ksh 0)")
}
