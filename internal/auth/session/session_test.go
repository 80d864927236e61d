package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundtrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.Issue("user-1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	r.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "cookie-token", m.TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", m.TokenFromRequest(r))
}

func TestClearCookieExpiresSession(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	w := httptest.NewRecorder()
	m.ClearCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
