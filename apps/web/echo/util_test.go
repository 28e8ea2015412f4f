package echoweb

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/result"
	"github.com/lewisTech25code/lewis/core/user"
	"github.com/lewisTech25code/lewis/internal/testutil"
	logsvc "github.com/lewisTech25code/lewis/services/logger"
	"github.com/lewisTech25code/lewis/services/statement"
	"github.com/lewisTech25code/lewis/storage/database/sqlxrepos"
)

type testApp struct {
	conf    *core.Config
	server  *Server
	usrRepo user.Repository
	resRepo result.Repository
	usrSvc  *user.Service
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	db := testutil.OpenDB(t)
	usrRepo := sqlxrepos.NewUserRepository(db)
	resRepo := sqlxrepos.NewResultRepository(db)
	usrSvc := user.NewService(usrRepo)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	logger := logsvc.NewRollbarLogger(log.New(&strings.Builder{}, "", 0), conf)
	logger.Enable(false)

	server, err := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		DB:         db,
		UserSvc:    usrSvc,
		ResultSvc:  result.NewService(resRepo),
		Exporter:   statement.NewExporter(false),
		Validate:   validate,
		Translator: translator,
	})
	require.NoError(t, err)

	return &testApp{conf: conf, server: server, usrRepo: usrRepo, resRepo: resRepo, usrSvc: usrSvc}
}

type httpTest struct {
	name         string
	method       string
	path         string
	form         url.Values
	cookie       *http.Cookie
	wantCode     int
	wantLocation string
	wantBody     []string
}

func itoa(i int) string { return strconv.Itoa(i) }

func indexOf(s, substr string) int { return strings.Index(s, substr) }

func newAuthRequest(method, path string, cookie *http.Cookie, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req, httptest.NewRecorder()
}

func (app *testApp) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.cookie, tt.form)
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResponse(t, tt, app.do(tt))
		})
	}
}

func checkResponse(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	assert.Equal(t, wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantLocation != "" {
		assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
	}
	for _, want := range tt.wantBody {
		assert.Contains(t, rec.Body.String(), want)
	}
}

// sessionCookie returns a valid session cookie for usr.
func (app *testApp) sessionCookie(t *testing.T, usr user.User) *http.Cookie {
	t.Helper()

	token, err := GenerateToken(newClaims(usr, app.conf), app.conf.SecretKey)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

// responseCookie returns the session cookie set by the response, if any.
func responseCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func (app *testApp) createStudent(t *testing.T, uname string) user.User {
	return testutil.CreateUser(t, app.usrRepo, uname, "s3cret-Pass", false, user.DefaultBalance)
}

func (app *testApp) createAdmin(t *testing.T) user.User {
	t.Helper()

	admin, _, err := app.usrSvc.EnsureAdmin(context.Background(), "admin123")
	require.NoError(t, err)
	return admin
}
