package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/internal/auth/session"
	"lifehub/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestRequireAuthRedirectsAnonymousToLogin(t *testing.T) {
	sessions := session.NewManager("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a principal")
	})

	w := httptest.NewRecorder()
	RequireAuth(sessions, "/login/")(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))
}

func TestRequireAuthRedirectsOnInvalidToken(t *testing.T) {
	sessions := session.NewManager("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	})

	r := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	RequireAuth(sessions, "/login/")(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))
}

func TestRequireAuthPutsPrincipalInContext(t *testing.T) {
	sessions := session.NewManager("test-secret", time.Hour)
	token, err := sessions.Issue("user-1")
	require.NoError(t, err)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	RequireAuth(sessions, "/login/")(next).ServeHTTP(w, r)

	assert.Equal(t, "user-1", seen)
}

func TestUserIDEmptyWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserID(r))
}
