package auth_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/hrportal/internal/auth"
)

func chiRouter(h *auth.Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/auth", h.MountRoutes)
	return r
}

var testCookies = auth.NewCookies("guard-secret", time.Hour, false)

func sessionCookies(t *testing.T, sess auth.Session) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, testCookies.Write(rec, sess))
	return rec.Result().Cookies()
}

func TestGuardRedirects(t *testing.T) {
	full := completeSession()
	partial := full
	partial.Profile = nil
	tokenOnly := auth.Session{Token: "jwt"}

	cases := []struct {
		name     string
		path     string
		sess     *auth.Session
		location string
	}{
		{"root always goes to login", "/", nil, auth.LoginPath},
		{"root with session still goes to login", "/", &full, auth.LoginPath},
		{"login open to anonymous", "/auth/login", nil, ""},
		{"login with jwt and sso goes to sso", "/auth/login", &partial, auth.SSOPath},
		{"login with token only stays", "/auth/login", &tokenOnly, ""},
		{"sso without cookies goes to login", "/auth/sso", nil, auth.LoginPath},
		{"sso with jwt and sso passes", "/auth/sso", &partial, ""},
		{"pages without cookies goes to login", "/pages/golongan", nil, auth.LoginPath},
		{"pages without profile goes to login", "/pages/golongan", &partial, auth.LoginPath},
		{"pages with all cookies passes", "/pages/golongan", &full, ""},
		{"other paths pass", "/static/app.css", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var reached bool
			var seen auth.Session
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				seen, _ = auth.FromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.sess != nil {
				for _, c := range sessionCookies(t, *tc.sess) {
					req.AddCookie(c)
				}
			}
			res := httptest.NewRecorder()
			auth.Guard(nil, testCookies)(next).ServeHTTP(res, req)

			if tc.location != "" {
				assert.Equal(t, http.StatusSeeOther, res.Code)
				assert.Equal(t, tc.location, res.Header().Get("Location"))
				assert.False(t, reached)
				return
			}
			assert.True(t, reached)
			if tc.sess != nil {
				assert.Equal(t, tc.sess.Token, seen.Token)
			}
		})
	}
}

func TestGuardRejectsCorruptCookiesOnPages(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pages/jabatan", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieJWT, Value: "jwt"})
	req.AddCookie(&http.Cookie{Name: auth.CookieSSO, Value: "%%%"})
	req.AddCookie(&http.Cookie{Name: auth.CookieUserData, Value: "%%%"})
	res := httptest.NewRecorder()

	auth.Guard(nil, testCookies)(http.NotFoundHandler()).ServeHTTP(res, req)

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, auth.LoginPath, res.Header().Get("Location"))
}

func TestGuardRejectsEditedPermissions(t *testing.T) {
	viewer := completeSession()
	viewer.Profile.Permissions = nil
	cookies := sessionCookies(t, viewer)

	// Rewrite the profile payload with extra permissions but keep the old signature.
	forged := *viewer.Profile
	forged.Permissions = []string{"master_golongan.edit"}
	data, err := json.Marshal(forged)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/pages/golongan", nil)
	for _, c := range cookies {
		if c.Name == auth.CookieUserData {
			_, sig, _ := strings.Cut(c.Value, ".")
			c.Value = base64.RawURLEncoding.EncodeToString(data) + "." + sig
		}
		req.AddCookie(c)
	}
	reached := false
	res := httptest.NewRecorder()
	auth.Guard(nil, testCookies)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true })).ServeHTTP(res, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, auth.LoginPath, res.Header().Get("Location"))
}

func TestCookiesRejectProfileFromAnotherToken(t *testing.T) {
	admin := completeSession()
	other := completeSession()
	other.Token = "jwt-other"

	req := httptest.NewRequest(http.MethodGet, "/pages/golongan", nil)
	for _, c := range sessionCookies(t, admin) {
		if c.Name == auth.CookieJWT {
			c.Value = other.Token
		}
		req.AddCookie(c)
	}

	_, err := testCookies.Read(req)
	assert.ErrorIs(t, err, auth.ErrCookieSignature)
}

func TestCookiesRejectOtherSecret(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pages/golongan", nil)
	for _, c := range sessionCookies(t, completeSession()) {
		req.AddCookie(c)
	}

	_, err := auth.NewCookies("another-secret", time.Hour, false).Read(req)
	assert.ErrorIs(t, err, auth.ErrCookieSignature)

	sess, err := testCookies.Read(req)
	require.NoError(t, err)
	assert.True(t, sess.Complete())
}

func TestSessionHelpers(t *testing.T) {
	sess := completeSession()
	assert.True(t, sess.Authenticated())
	assert.True(t, sess.Complete())
	assert.True(t, sess.Can(" MASTER_GOLONGAN.CREATE"))
	assert.False(t, sess.Can("master_golongan.edit"))
	assert.Equal(t, "hr.admin", sess.Actor())
	assert.Len(t, sess.Fingerprint(), 16)
	assert.NotContains(t, sess.Fingerprint(), sess.Token)

	var anon auth.Session
	assert.False(t, anon.Authenticated())
	assert.False(t, anon.Can("anything"))
	assert.Equal(t, "System", anon.Actor())
}
