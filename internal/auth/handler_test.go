package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/internal/auth/repository"
	"lifehub/internal/auth/service"
	"lifehub/internal/auth/session"
	"lifehub/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var testConfig = Config{
	SuccessPath:       "/tasks/",
	LoginPath:         "/login/",
	ResetDonePath:     "/password_reset_sent/",
	ResetCompletePath: "/password_reset_complete/",
}

func newAuthTestHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions := session.NewManager("test-secret", time.Hour)
	svc := service.New(repository.NewUserRepository(db), sessions, service.LogMailer{}, "http://localhost:8080/password_reset_confirm/")
	return NewAuthHandler(svc, sessions, testConfig), mock
}

func TestRegisterSetsSessionCookieAndRedirects(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "fred", "fred@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	form := url.Values{
		"username":  {"fred"},
		"email":     {"fred@example.com"},
		"password1": {"abc123abc"},
		"password2": {"abc123abc"},
	}
	r := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Register(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tasks/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterValidationFailureNeverEchoesPasswords(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	body := `{"username":"fred","email":"fred@example.com","password1":"abc123abc","password2":"mismatch99"}`
	r := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Register(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Errors map[string]string          `json:"errors"`
		Input  map[string]json.RawMessage `json:"input"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "password2")
	assert.Contains(t, resp.Input, "username")
	assert.NotContains(t, resp.Input, "password1")
	assert.NotContains(t, resp.Input, "password2")
	assert.NotContains(t, w.Body.String(), "abc123abc")
}

func TestLoginPageRedirectsAuthenticatedCaller(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	token, err := h.Sessions.Issue("user-1")
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/login/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	h.LoginPage(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tasks/", w.Header().Get("Location"))
}

func TestLoginPageRendersForAnonymousCaller(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	w := httptest.NewRecorder()
	h.LoginPage(w, httptest.NewRequest(http.MethodGet, "/login/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login")
}

func TestLogoutClearsSessionAndRedirectsToLogin(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodGet, "/logout/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestPasswordResetAlwaysRedirectsToDone(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	// Unknown address still lands on the done page, so the endpoint cannot
	// be used to probe for accounts.
	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	form := url.Values{"email": {"ghost@example.com"}}
	r := httptest.NewRequest(http.MethodPost, "/password_reset/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.PasswordReset(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/password_reset_sent/", w.Header().Get("Location"))
}

func TestPasswordResetConfirmPageRejectsUnknownToken(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectQuery("SELECT .* FROM password_reset_tokens").
		WithArgs("bad-token").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at", "used"}))

	r := httptest.NewRequest(http.MethodGet, "/password_reset_confirm/bad-token/", nil)
	r.SetPathValue("token", "bad-token")
	w := httptest.NewRecorder()
	h.PasswordResetConfirmPage(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPasswordResetConfirmRedirectsToComplete(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectQuery("SELECT .* FROM password_reset_tokens").
		WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at", "used"}).
			AddRow("tok-1", "user-1", time.Now().Add(time.Hour), false))
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs(sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE password_reset_tokens SET used = true").
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	form := url.Values{"password1": {"new-password"}, "password2": {"new-password"}}
	r := httptest.NewRequest(http.MethodPost, "/password_reset_confirm/tok-1/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.SetPathValue("token", "tok-1")
	w := httptest.NewRecorder()
	h.PasswordResetConfirm(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/password_reset_complete/", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
